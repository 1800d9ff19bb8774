package config

import (
	"os"
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Overlay the TOML file ($TM_CONFIG, or config.toml in the config directory)
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	path, required := os.Getenv("TM_CONFIG"), true
	if path == "" {
		path, required = DefaultConfigPath(), false
	}
	if err := l.config.LoadFromFile(path, required); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	config.ApplyOverrides(overrides)

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields were not set.
type ConfigOverrides struct {
	// Remote overrides
	RemoteURL     *string
	RemoteTimeout *time.Duration

	// Session overrides
	ConfigDir *string

	// Server overrides
	ServerAddr       *string
	DBDir            *string
	DBFilename       *string
	DBDirPermissions *uint32

	// Display overrides
	TimeFormat        *string
	ListDefaultFormat *string

	// Logging overrides
	LogLevel  *string
	LogFormat *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides applies command line overrides to the configuration.
// A nil overrides value changes nothing.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.RemoteURL != nil {
		c.Remote.BaseURL = *overrides.RemoteURL
	}
	if overrides.RemoteTimeout != nil {
		c.Remote.RequestTimeout = *overrides.RemoteTimeout
	}

	if overrides.ConfigDir != nil {
		c.Session.Dir = *overrides.ConfigDir
	}

	if overrides.ServerAddr != nil {
		c.Server.Addr = *overrides.ServerAddr
	}
	if overrides.DBDir != nil {
		c.Server.DBDir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Server.DBFilename = *overrides.DBFilename
	}
	if overrides.DBDirPermissions != nil {
		c.Server.DirPermissions = *overrides.DBDirPermissions
	}

	if overrides.TimeFormat != nil {
		c.Display.TimeFormat = *overrides.TimeFormat
	}
	if overrides.ListDefaultFormat != nil {
		c.Display.ListDefaultFormat = *overrides.ListDefaultFormat
	}

	if overrides.LogLevel != nil {
		c.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		c.Logging.Format = *overrides.LogFormat
	}

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
