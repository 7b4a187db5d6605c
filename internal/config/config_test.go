package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DisplayWidth != 128 || cfg.DisplayHeight != 64 {
		t.Errorf("display = %dx%d, want 128x64", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	if cfg.EyeWidth != 36 || cfg.EyeHeight != 36 || cfg.EyeSpacing != 10 {
		t.Errorf("eyes = %dx%d spacing %d, want 36x36 spacing 10",
			cfg.EyeWidth, cfg.EyeHeight, cfg.EyeSpacing)
	}
	if !cfg.AutoBlink {
		t.Error("auto-blink should default on")
	}
	if !cfg.DemoMode {
		t.Error("demo mode should default on")
	}
	if cfg.Transition != 200*time.Millisecond {
		t.Errorf("transition = %v, want 200ms", cfg.Transition)
	}
	if cfg.TickRate != 33*time.Millisecond {
		t.Errorf("tick rate = %v, want 33ms", cfg.TickRate)
	}
	if cfg.SerialPath != "" || cfg.SerialAddr != 1 {
		t.Errorf("serial = %q addr %d, want disabled with addr 1", cfg.SerialPath, cfg.SerialAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ROBOEYES_DISPLAY_WIDTH", "256")
	t.Setenv("ROBOEYES_EYE_WIDTH", "48")
	t.Setenv("ROBOEYES_AUTO_BLINK", "false")
	t.Setenv("ROBOEYES_TRANSITION", "350ms")
	t.Setenv("ROBOEYES_WEB_PORT", "9000")
	t.Setenv("ROBOEYES_SERIAL", "/dev/ttyUSB0")
	t.Setenv("ROBOEYES_SERIAL_ADDR", "7")

	cfg := Default()
	cfg.LoadEnv()

	if cfg.DisplayWidth != 256 {
		t.Errorf("DisplayWidth = %d, want 256", cfg.DisplayWidth)
	}
	if cfg.EyeWidth != 48 {
		t.Errorf("EyeWidth = %d, want 48", cfg.EyeWidth)
	}
	if cfg.AutoBlink {
		t.Error("AutoBlink should be overridden off")
	}
	if cfg.Transition != 350*time.Millisecond {
		t.Errorf("Transition = %v, want 350ms", cfg.Transition)
	}
	if cfg.WebPort != "9000" {
		t.Errorf("WebPort = %q, want 9000", cfg.WebPort)
	}
	if cfg.SerialPath != "/dev/ttyUSB0" || cfg.SerialAddr != 7 {
		t.Errorf("serial = %q addr %d, want /dev/ttyUSB0 addr 7", cfg.SerialPath, cfg.SerialAddr)
	}

	// Untouched fields keep their defaults.
	if cfg.DisplayHeight != 64 {
		t.Errorf("DisplayHeight = %d, want untouched 64", cfg.DisplayHeight)
	}
}

func TestLoadEnvIgnoresMalformed(t *testing.T) {
	t.Setenv("ROBOEYES_DISPLAY_WIDTH", "wide")
	t.Setenv("ROBOEYES_TICK_RATE", "fast")
	t.Setenv("ROBOEYES_DEMO", "sometimes")

	cfg := Default()
	cfg.LoadEnv()

	if cfg.DisplayWidth != 128 || cfg.TickRate != 33*time.Millisecond || !cfg.DemoMode {
		t.Error("malformed overrides should leave defaults in place")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"tiny display", func(c *Config) { c.DisplayWidth = 4 }, true},
		{"tiny eyes", func(c *Config) { c.EyeWidth = 2 }, true},
		{"negative spacing", func(c *Config) { c.EyeSpacing = -1 }, true},
		{"eyes too wide for display", func(c *Config) { c.EyeWidth = 64 }, true},
		{"eyes too tall for display", func(c *Config) { c.EyeHeight = 70 }, true},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true},
		{"serial address too big", func(c *Config) { c.SerialAddr = 256 }, true},
		{"negative serial address", func(c *Config) { c.SerialAddr = -1 }, true},
		{"snug fit is fine", func(c *Config) { c.EyeWidth = 59; c.EyeSpacing = 10 }, false},
		{"dashboard disabled", func(c *Config) { c.WebPort = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateErrorNamesField(t *testing.T) {
	cfg := Default()
	cfg.TickRate = -time.Second

	err := cfg.Validate()
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("Validate() error = %T, want *ConfigError", err)
	}
	if cerr.Field != "TickRate" {
		t.Errorf("error field = %q, want TickRate", cerr.Field)
	}
	if cerr.Error() == "" {
		t.Error("error message should not be empty")
	}
}
