package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskmaster"

	// SessionStorageKey is the fixed key the session record is persisted under.
	SessionStorageKey = "auth-storage"

	// ConfigFileName is the optional TOML file read from the config directory.
	ConfigFileName = "config.toml"
)

// Config holds all configuration options for the taskmaster client and server
type Config struct {
	Remote      RemoteConfig      `toml:"remote"`
	Session     SessionConfig     `toml:"session"`
	Server      ServerConfig      `toml:"server"`
	Display     DisplayConfig     `toml:"display"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// RemoteConfig describes the REST origin the client synchronizes with
type RemoteConfig struct {
	BaseURL        string        `toml:"base_url" env:"TM_REMOTE_URL"`
	RequestTimeout time.Duration `toml:"request_timeout" env:"TM_REMOTE_TIMEOUT"`
}

// SessionConfig holds where the session record is persisted
type SessionConfig struct {
	Dir      string `toml:"dir" env:"TM_CONFIG_DIR"`
	Filename string `toml:"filename" env:"TM_SESSION_FILENAME"`
}

// ServerConfig holds REST backend settings
type ServerConfig struct {
	Addr           string `toml:"addr" env:"TM_SERVER_ADDR"`
	DBDir          string `toml:"db_dir" env:"TM_DB_DIR"`
	DBFilename     string `toml:"db_filename" env:"TM_DB_FILENAME"`
	DirPermissions uint32 `toml:"dir_permissions" env:"TM_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds CLI output settings
type DisplayConfig struct {
	TimeFormat           string `toml:"time_format" env:"TM_TIME_DISPLAY_FORMAT"`
	DefaultCategoryColor string `toml:"default_category_color" env:"TM_DEFAULT_CATEGORY_COLOR"`
	ListDefaultFormat    string `toml:"list_default_format" env:"TM_LIST_DEFAULT_FORMAT"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" env:"TM_LOG_LEVEL"`
	Format string `toml:"format" env:"TM_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TM_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TM_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Remote: RemoteConfig{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			Dir:      DefaultConfigDir(),
			Filename: SessionStorageKey + ".json",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			DBDir:          filepath.Join(homeDir, ".tm"),
			DBFilename:     "tm.db",
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			TimeFormat:           "2006-01-02 15:04",
			DefaultCategoryColor: "bg-gray-100 text-gray-800",
			ListDefaultFormat:    "table",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// DefaultConfigDir returns XDG_CONFIG_HOME/taskmaster or $HOME/.config/taskmaster.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// GetSessionPath returns the full path to the persisted session record
func (c *Config) GetSessionPath() string {
	return filepath.Join(c.Session.Dir, c.Session.Filename)
}

// GetDatabasePath returns the full path to the server database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Server.DBDir, c.Server.DBFilename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Remote configuration
	if url := os.Getenv("TM_REMOTE_URL"); url != "" {
		c.Remote.BaseURL = url
	}
	if timeout := os.Getenv("TM_REMOTE_TIMEOUT"); timeout != "" {
		c.Remote.RequestTimeout = ParseDurationWithFallback(timeout, c.Remote.RequestTimeout)
	}

	// Session configuration
	if dir := os.Getenv("TM_CONFIG_DIR"); dir != "" {
		c.Session.Dir = dir
	}
	if filename := os.Getenv("TM_SESSION_FILENAME"); filename != "" {
		c.Session.Filename = filename
	}

	// Server configuration
	if addr := os.Getenv("TM_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("TM_DB_DIR"); dir != "" {
		c.Server.DBDir = dir
	}
	if filename := os.Getenv("TM_DB_FILENAME"); filename != "" {
		c.Server.DBFilename = filename
	}
	if perms := os.Getenv("TM_DB_DIR_PERMISSIONS"); perms != "" {
		c.Server.DirPermissions = ParseUint32WithFallback(perms, 8, c.Server.DirPermissions)
	}

	// Display configuration
	if format := os.Getenv("TM_TIME_DISPLAY_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if color := os.Getenv("TM_DEFAULT_CATEGORY_COLOR"); color != "" {
		c.Display.DefaultCategoryColor = color
	}
	if format := os.Getenv("TM_LIST_DEFAULT_FORMAT"); format != "" {
		c.Display.ListDefaultFormat = format
	}

	// Logging configuration
	if level := os.Getenv("TM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TM_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	// Application configuration
	if timeout := os.Getenv("TM_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return &ConfigError{Field: "remote.base_url", Message: "remote base URL cannot be empty"}
	}
	if c.Remote.RequestTimeout <= 0 {
		return &ConfigError{Field: "remote.request_timeout", Message: "request timeout must be positive"}
	}

	if c.Session.Dir == "" {
		return &ConfigError{Field: "session.dir", Message: "session directory cannot be empty"}
	}
	if c.Session.Filename == "" {
		return &ConfigError{Field: "session.filename", Message: "session filename cannot be empty"}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Server.DBDir == "" {
		return &ConfigError{Field: "server.db_dir", Message: "database directory cannot be empty"}
	}
	if c.Server.DBFilename == "" {
		return &ConfigError{Field: "server.db_filename", Message: "database filename cannot be empty"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "display format cannot be empty"}
	}
	switch c.Display.ListDefaultFormat {
	case "table", "json", "yaml":
	default:
		return &ConfigError{Field: "display.list_default_format", Message: "list format must be table, json or yaml"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
