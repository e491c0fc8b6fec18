// Package cli parses command line arguments for the contraption demo.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings parsed from the command line.
type Config struct {
	SettingsPath string        // Path to the YAML game settings file
	LogLevel     string        // Log level (debug, info, warn, error)
	Headless     bool          // Run without a window (draw calls recorded, audio muted)
	StepMode     bool          // Start with the timer in single-step mode
	Timeout      time.Duration // Stop after this long in headless mode (0 is unlimited)
	ShowHelp     bool          // Print usage and exit
}

// ParseArgs parses command line arguments into a Config. Flags may be
// overridden by the HEADLESS, LOG_LEVEL and TIMEOUT environment variables,
// with flags taking precedence.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("contraption", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	fs.StringVar(&config.SettingsPath, "settings", "gamesettings.yaml", "path to game settings file")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.Headless, "headless", false, "run without a window")
	fs.BoolVar(&config.StepMode, "step", false, "start in single-step mode")
	fs.IntVar(&timeoutSec, "timeout", 0, "headless run duration in seconds")
	fs.IntVar(&timeoutSec, "t", 0, "headless run duration in seconds (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	// A positional argument is an alternative way to name the settings file.
	if fs.NArg() > 0 {
		config.SettingsPath = fs.Arg(0)
	}

	return config, nil
}

// PrintHelp prints usage information to stdout.
func PrintHelp() {
	fmt.Println(`contraption - a 2D Rube Goldberg machine on Box2D and Ebitengine

Usage:
  contraption [flags] [settings file]

Flags:
  -settings path   path to game settings file (default "gamesettings.yaml")
  -l, -log-level   log level: debug, info, warn, error (default "info")
  -headless        run without a window; draw calls are recorded, audio muted
  -step            start with the timer in single-step mode
  -t, -timeout     headless run duration in seconds (0 is unlimited)
  -h, -help        show this help

Environment:
  HEADLESS=1       same as -headless
  LOG_LEVEL=debug  same as -log-level debug
  TIMEOUT=10       same as -timeout 10`)
}
