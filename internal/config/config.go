// Package config provides configuration for roboeyes commands: defaults,
// ROBOEYES_* environment overrides and validation. Flag parsing stays in
// the cmd mains; this struct is data only.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultDisplayWidth  = 128
	DefaultDisplayHeight = 64
	DefaultEyeWidth      = 36
	DefaultEyeHeight     = 36
	DefaultEyeSpacing    = 10

	DefaultTransition = 200 * time.Millisecond
	DefaultTickRate   = 33 * time.Millisecond // 30Hz control loop

	DefaultWebPort    = "8090"
	DefaultLogLevel   = "info"
	DefaultSerialAddr = 1
)

// Config holds all configuration for the roboeyes daemon. It is read once
// at startup; there is no runtime reconfiguration.
type Config struct {
	// Display geometry, in pixels.
	DisplayWidth  int
	DisplayHeight int
	EyeWidth      int
	EyeHeight     int
	EyeSpacing    int

	// Behavior.
	AutoBlink  bool          // randomized blinking
	DemoMode   bool          // cycle expressions until the first command
	Transition time.Duration // pacing for commanded transitions
	TickRate   time.Duration // control loop interval

	// Surfaces.
	WebPort  string // dashboard listen port; empty disables the dashboard
	LogLevel string // debug, info, warn, error

	// Serial link. Empty path disables the serial reader.
	SerialPath string // device to read framed commands from, e.g. /dev/ttyS0
	SerialAddr int    // our address on the shared bus, 0-255
}

// Default returns the stock configuration: a 128x64 panel with 36x36
// eyes, autonomous blinking, and demo mode on until the first command.
func Default() Config {
	return Config{
		DisplayWidth:  DefaultDisplayWidth,
		DisplayHeight: DefaultDisplayHeight,
		EyeWidth:      DefaultEyeWidth,
		EyeHeight:     DefaultEyeHeight,
		EyeSpacing:    DefaultEyeSpacing,
		AutoBlink:     true,
		DemoMode:      true,
		Transition:    DefaultTransition,
		TickRate:      DefaultTickRate,
		WebPort:       DefaultWebPort,
		LogLevel:      DefaultLogLevel,
		SerialAddr:    DefaultSerialAddr,
	}
}

// LoadEnv applies ROBOEYES_* environment overrides in place. Call before
// flag parsing so flags win over the environment.
func (c *Config) LoadEnv() {
	envInt("ROBOEYES_DISPLAY_WIDTH", &c.DisplayWidth)
	envInt("ROBOEYES_DISPLAY_HEIGHT", &c.DisplayHeight)
	envInt("ROBOEYES_EYE_WIDTH", &c.EyeWidth)
	envInt("ROBOEYES_EYE_HEIGHT", &c.EyeHeight)
	envInt("ROBOEYES_EYE_SPACING", &c.EyeSpacing)
	envBool("ROBOEYES_AUTO_BLINK", &c.AutoBlink)
	envBool("ROBOEYES_DEMO", &c.DemoMode)
	envDuration("ROBOEYES_TRANSITION", &c.Transition)
	envDuration("ROBOEYES_TICK_RATE", &c.TickRate)
	envString("ROBOEYES_WEB_PORT", &c.WebPort)
	envString("ROBOEYES_LOG_LEVEL", &c.LogLevel)
	envString("ROBOEYES_SERIAL", &c.SerialPath)
	envInt("ROBOEYES_SERIAL_ADDR", &c.SerialAddr)
}

// Validate checks that the configuration describes a face that can
// actually be drawn.
func (c *Config) Validate() error {
	if c.DisplayWidth < 8 || c.DisplayHeight < 8 {
		return &ConfigError{Field: "Display", Message: "display must be at least 8x8 pixels"}
	}
	if c.EyeWidth < 4 || c.EyeHeight < 4 {
		return &ConfigError{Field: "Eye", Message: "eyes must be at least 4x4 pixels"}
	}
	if c.EyeSpacing < 0 {
		return &ConfigError{Field: "EyeSpacing", Message: "eye spacing cannot be negative"}
	}
	if w := 2*c.EyeWidth + c.EyeSpacing; w > c.DisplayWidth {
		return &ConfigError{
			Field:   "EyeWidth",
			Message: fmt.Sprintf("eyes do not fit: group width %d exceeds display width %d", w, c.DisplayWidth),
		}
	}
	if c.EyeHeight > c.DisplayHeight {
		return &ConfigError{
			Field:   "EyeHeight",
			Message: fmt.Sprintf("eye height %d exceeds display height %d", c.EyeHeight, c.DisplayHeight),
		}
	}
	if c.TickRate <= 0 {
		return &ConfigError{Field: "TickRate", Message: "tick rate must be positive"}
	}
	if c.SerialAddr < 0 || c.SerialAddr > 255 {
		return &ConfigError{Field: "SerialAddr", Message: "serial address must fit in one byte"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func envInt(key string, dst *int) {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			*dst = v
		}
	}
}

func envBool(key string, dst *bool) {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			*dst = v
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if s := os.Getenv(key); s != "" {
		if v, err := time.ParseDuration(s); err == nil {
			*dst = v
		}
	}
}

func envString(key string, dst *string) {
	if s := os.Getenv(key); s != "" {
		*dst = s
	}
}
