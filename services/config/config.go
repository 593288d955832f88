// Package config resolves the compiled-in board profile for a device.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"joydisplay-go/errcode"
)

// EmbeddedConfigLookup allows overriding how profiles are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Config is one board profile. Pin numbers use the RP2040 GPn scheme.
type Config struct {
	Joystick  JoystickConfig  `yaml:"joystick"`
	LEDs      LEDConfig       `yaml:"leds"`
	Buttons   ButtonConfig    `yaml:"buttons"`
	Display   DisplayConfig   `yaml:"display"`
	PWM       PWMConfig       `yaml:"pwm"`
	Console   ConsoleConfig   `yaml:"console"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
}

type JoystickConfig struct {
	XPin int `yaml:"x_pin"` // ADC-capable, GP26..GP29
	YPin int `yaml:"y_pin"`
}

type LEDConfig struct {
	RedPin   int `yaml:"red_pin"`   // PWM
	GreenPin int `yaml:"green_pin"` // digital
	BluePin  int `yaml:"blue_pin"`  // PWM
}

type ButtonConfig struct {
	JoyPin int `yaml:"joy_pin"`
	APin   int `yaml:"a_pin"`
}

type DisplayConfig struct {
	Bus     string `yaml:"bus"` // "i2c0" or "i2c1"
	SDAPin  int    `yaml:"sda_pin"`
	SCLPin  int    `yaml:"scl_pin"`
	FreqHz  uint32 `yaml:"freq_hz"`
	Address uint16 `yaml:"address"`
}

type PWMConfig struct {
	FreqHz uint32 `yaml:"freq_hz"`
}

type ConsoleConfig struct {
	Baud     uint32 `yaml:"baud"`
	LogLevel string `yaml:"log_level"`
}

type HeartbeatConfig struct {
	IntervalS int `yaml:"interval_s"` // 0 disables
}

// DefaultConfig matches the reference board wiring.
func DefaultConfig() Config {
	return Config{
		Joystick: JoystickConfig{XPin: 26, YPin: 27},
		LEDs:     LEDConfig{RedPin: 13, GreenPin: 11, BluePin: 12},
		Buttons:  ButtonConfig{JoyPin: 22, APin: 5},
		Display: DisplayConfig{
			Bus:     "i2c1",
			SDAPin:  14,
			SCLPin:  15,
			FreqHz:  400_000,
			Address: 0x3C,
		},
		PWM:       PWMConfig{FreqHz: 488_000},
		Console:   ConsoleConfig{Baud: 115200, LogLevel: "info"},
		Heartbeat: HeartbeatConfig{IntervalS: 5},
	}
}

// Load resolves and decodes the embedded profile for device.
func Load(device string) (Config, error) {
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return Config{}, &errcode.E{C: errcode.UnknownDevice, Op: "config.load", Msg: device}
	}
	return Decode(raw)
}

// Decode parses a YAML profile on top of DefaultConfig and validates it.
// Unknown keys are rejected.
func Decode(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errcode.Wrap(errcode.InvalidConfig, "config.decode", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: fmt.Sprintf(format, args...)}
}

// Validate checks pin ranges, pin conflicts and bus settings.
func (c *Config) Validate() error {
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"joystick.x_pin", c.Joystick.XPin},
		{"joystick.y_pin", c.Joystick.YPin},
	} {
		if p.pin < 26 || p.pin > 29 {
			return invalid("%s=%d is not an ADC pin (26..29)", p.name, p.pin)
		}
	}

	seen := map[int]string{}
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"joystick.x_pin", c.Joystick.XPin},
		{"joystick.y_pin", c.Joystick.YPin},
		{"leds.red_pin", c.LEDs.RedPin},
		{"leds.green_pin", c.LEDs.GreenPin},
		{"leds.blue_pin", c.LEDs.BluePin},
		{"buttons.joy_pin", c.Buttons.JoyPin},
		{"buttons.a_pin", c.Buttons.APin},
		{"display.sda_pin", c.Display.SDAPin},
		{"display.scl_pin", c.Display.SCLPin},
	} {
		if p.pin < 0 || p.pin > 28 {
			return invalid("%s=%d out of range", p.name, p.pin)
		}
		if other, dup := seen[p.pin]; dup {
			return invalid("%s and %s share GP%d", other, p.name, p.pin)
		}
		seen[p.pin] = p.name
	}

	switch c.Display.Bus {
	case "i2c0", "i2c1":
	default:
		return invalid("display.bus %q unknown", c.Display.Bus)
	}
	if c.Display.FreqHz == 0 || c.Display.FreqHz > 1_000_000 {
		return invalid("display.freq_hz must be 1..1000000")
	}
	if c.Display.Address == 0 || c.Display.Address > 0x7F {
		return invalid("display.address 0x%X is not a 7-bit address", c.Display.Address)
	}
	if c.PWM.FreqHz == 0 {
		return invalid("pwm.freq_hz must be > 0")
	}
	if c.Console.Baud == 0 {
		return invalid("console.baud must be > 0")
	}
	if _, err := ParseLogLevel(c.Console.LogLevel); err != nil {
		return err
	}
	if c.Heartbeat.IntervalS < 0 {
		return invalid("heartbeat.interval_s must be >= 0")
	}
	return nil
}

// HeartbeatInterval returns the heartbeat period, 0 when disabled.
func (c *Config) HeartbeatInterval() time.Duration {
	return time.Duration(c.Heartbeat.IntervalS) * time.Second
}

// ParseLogLevel converts error|warn|info|debug to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, invalid("console.log_level %q (want error, warn, info or debug)", level)
	}
}
