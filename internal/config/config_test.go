package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every file lookup at a temp dir and clears TM_* variables
// that a developer's shell might carry
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"TM_CONFIG", "TM_REMOTE_URL", "TM_REMOTE_TIMEOUT", "TM_CONFIG_DIR", "TM_SESSION_FILENAME",
		"TM_SERVER_ADDR", "TM_DB_DIR", "TM_DB_FILENAME", "TM_DB_DIR_PERMISSIONS",
		"TM_TIME_DISPLAY_FORMAT", "TM_DEFAULT_CATEGORY_COLOR", "TM_LIST_DEFAULT_FORMAT",
		"TM_LOG_LEVEL", "TM_LOG_FORMAT", "TM_APP_TIMEOUT", "TM_APP_VERBOSE",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestNewConfig_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg := NewConfig()

	assert.Equal(t, "http://localhost:8080", cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, filepath.Join(dir, "taskmaster"), cfg.Session.Dir)
	assert.Equal(t, "auth-storage.json", cfg.Session.Filename)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "bg-gray-100 text-gray-800", cfg.Display.DefaultCategoryColor)
	assert.Equal(t, "table", cfg.Display.ListDefaultFormat)
	assert.NoError(t, cfg.Validate())
}

func TestConfigPaths(t *testing.T) {
	cfg := NewConfig()
	cfg.Session.Dir = "/tmp/tm"
	cfg.Server.DBDir = "/var/lib/tm"

	assert.Equal(t, "/tmp/tm/auth-storage.json", cfg.GetSessionPath())
	assert.Equal(t, "/var/lib/tm/tm.db", cfg.GetDatabasePath())
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TM_REMOTE_URL", "http://api.example:9000")
	t.Setenv("TM_REMOTE_TIMEOUT", "3s")
	t.Setenv("TM_CONFIG_DIR", "/tmp/session")
	t.Setenv("TM_DB_DIR_PERMISSIONS", "700")
	t.Setenv("TM_LIST_DEFAULT_FORMAT", "json")
	t.Setenv("TM_APP_VERBOSE", "true")
	t.Setenv("TM_APP_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "http://api.example:9000", cfg.Remote.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "/tmp/session", cfg.Session.Dir)
	assert.Equal(t, uint32(0700), cfg.Server.DirPermissions)
	assert.Equal(t, "json", cfg.Display.ListDefaultFormat)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout, "unparseable values keep the previous setting")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty base url", func(c *Config) { c.Remote.BaseURL = "" }, "remote.base_url"},
		{"zero request timeout", func(c *Config) { c.Remote.RequestTimeout = 0 }, "remote.request_timeout"},
		{"empty session dir", func(c *Config) { c.Session.Dir = "" }, "session.dir"},
		{"empty session filename", func(c *Config) { c.Session.Filename = "" }, "session.filename"},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"empty db dir", func(c *Config) { c.Server.DBDir = "" }, "server.db_dir"},
		{"empty db filename", func(c *Config) { c.Server.DBFilename = "" }, "server.db_filename"},
		{"empty time format", func(c *Config) { c.Display.TimeFormat = "" }, "display.time_format"},
		{"unknown list format", func(c *Config) { c.Display.ListDefaultFormat = "xml" }, "display.list_default_format"},
		{"negative app timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.field+": ")
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
[remote]
base_url = "http://from-file:8080"
request_timeout = "2s"

[display]
list_default_format = "yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path, true))

	assert.Equal(t, "http://from-file:8080", cfg.Remote.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "yaml", cfg.Display.ListDefaultFormat)
	assert.Equal(t, ":8080", cfg.Server.Addr, "keys absent from the file keep defaults")

	t.Run("missing optional file is ignored", func(t *testing.T) {
		assert.NoError(t, NewConfig().LoadFromFile(filepath.Join(dir, "nope.toml"), false))
	})

	t.Run("missing required file is an error", func(t *testing.T) {
		assert.Error(t, NewConfig().LoadFromFile(filepath.Join(dir, "nope.toml"), true))
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(bad, []byte("[remote\nbase_url ="), 0600))
		assert.Error(t, NewConfig().LoadFromFile(bad, true))
	})
}

func TestLoader_Precedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "tm.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[remote]
base_url = "http://file"

[logging]
level = "info"
`), 0600))
	t.Setenv("TM_CONFIG", path)
	t.Setenv("TM_REMOTE_URL", "http://env")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.Remote.BaseURL, "environment beats file")
	assert.Equal(t, "info", cfg.Logging.Level, "file beats defaults")

	flagURL := "http://flag"
	verbose := true
	cfg, err = NewLoader().LoadWithOverrides(&ConfigOverrides{RemoteURL: &flagURL, Verbose: &verbose})
	require.NoError(t, err)
	assert.Equal(t, "http://flag", cfg.Remote.BaseURL, "flags beat environment")
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_DefaultFileIsOptional(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Remote.BaseURL)
}

func TestLoadWithOverrides_Invalid(t *testing.T) {
	isolate(t)
	format := "xml"

	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{ListDefaultFormat: &format})

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.True(t, ParseBoolWithFallback("1", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("755", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("x", 8, 1))
}
