package config

import (
	"log/slog"
	"testing"
	"time"

	"joydisplay-go/errcode"
)

func TestLoadEmbeddedProfiles(t *testing.T) {
	cfg, err := Load("pico")
	if err != nil {
		t.Fatalf("Load(pico): %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("pico profile drifted from defaults:\n got %+v\nwant %+v", cfg, DefaultConfig())
	}

	dbg, err := Load("pico-debug")
	if err != nil {
		t.Fatalf("Load(pico-debug): %v", err)
	}
	if dbg.Console.LogLevel != "debug" || dbg.HeartbeatInterval() != time.Second {
		t.Fatalf("debug overrides not applied: %+v", dbg)
	}
	if dbg.LEDs != cfg.LEDs {
		t.Fatal("omitted keys should keep defaults")
	}
}

func TestLoadUnknownDevice(t *testing.T) {
	_, err := Load("nope")
	if errcode.Of(err) != errcode.UnknownDevice {
		t.Fatalf("err = %v, want unknown_device", err)
	}
}

func TestLoadUsesLookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		return []byte("leds:\n  green_pin: 25\n"), device == "bench"
	}
	t.Cleanup(func() { EmbeddedConfigLookup = old })

	cfg, err := Load("bench")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LEDs.GreenPin != 25 {
		t.Fatalf("green_pin = %d, want 25", cfg.LEDs.GreenPin)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "leds:\n  purple_pin: 3\n",
		"pin conflict":    "buttons:\n  a_pin: 13\n",
		"non-adc joy pin": "joystick:\n  x_pin: 3\n",
		"bad bus":         "display:\n  bus: spi0\n",
		"bad address":     "display:\n  address: 0x80\n",
		"bad log level":   "console:\n  log_level: loud\n",
		"zero pwm freq":   "pwm:\n  freq_hz: 0\n",
		"malformed":       "leds: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			if errcode.Of(err) != errcode.InvalidConfig {
				t.Fatalf("err = %v, want invalid_config", err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"error": slog.LevelError, "WARN": slog.LevelWarn, "warning": slog.LevelWarn,
		"": slog.LevelInfo, "debug": slog.LevelDebug,
	} {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v", in, got, err)
		}
	}
}
