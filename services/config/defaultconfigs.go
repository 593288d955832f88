package config

// -----------------------------------------------------------------------------
// Embedded board profiles
//
// Key: device name passed to Load.
// Val: YAML applied on top of DefaultConfig; omitted keys keep their defaults.
// -----------------------------------------------------------------------------

const cfgPico = `
joystick:
  x_pin: 26
  y_pin: 27
leds:
  red_pin: 13
  green_pin: 11
  blue_pin: 12
buttons:
  joy_pin: 22
  a_pin: 5
display:
  bus: i2c1
  sda_pin: 14
  scl_pin: 15
  freq_hz: 400000
  address: 0x3C
console:
  baud: 115200
  log_level: info
heartbeat:
  interval_s: 5
`

// Same wiring, chattier console for bench work.
const cfgPicoDebug = `
console:
  log_level: debug
heartbeat:
  interval_s: 1
`

var embeddedConfigs = map[string][]byte{
	"pico":       []byte(cfgPico),
	"pico-debug": []byte(cfgPicoDebug),
}
