package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want %q", cfg.ListenPort, ":8080")
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
	}
	if cfg.SQLitePath == "" {
		t.Error("SQLitePath should have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults().Validate() = %v, want nil", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HENDSHAKE_LISTEN_PORT", ":9090")
	t.Setenv("HENDSHAKE_BACKEND", "REDIS")
	t.Setenv("HENDSHAKE_REDIS_ADDR", "localhost:6379")
	t.Setenv("HENDSHAKE_REDIS_DB", "2")
	t.Setenv("HENDSHAKE_CORS_ORIGINS", "https://a.example, 'https://b.example'")
	t.Setenv("REDIS_DIAL_TIMEOUT", "1s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenPort)
	require.Equal(t, BackendRedis, cfg.Backend)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.Equal(t, time.Second, cfg.RedisDT)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hendshake.yaml")
	content := `
listen_port: ":7070"
backend: memory
shutdown_timeout: 9s
allowed_cidrs:
  - 10.0.0.0/8
rate_limit_burst: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("HENDSHAKE_CONFIG_FILE", path)
	t.Setenv("HENDSHAKE_RATE_LIMIT_BURST", "7") // env wins over file

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.ListenPort)
	require.Equal(t, BackendMemory, cfg.Backend)
	require.Equal(t, 9*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, []string{"10.0.0.0/8"}, cfg.AllowedCIDRS)
	require.Equal(t, 7, cfg.RateLimitBurst)
	// untouched fields keep defaults
	require.Equal(t, 10, cfg.RedisPoolSize)
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hendshake.toml")
	content := `
backend = "sqlite"
sqlite_path = "/tmp/entries.db"
log_level = "debug"
pretty_log = false
request_timeout = "750ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("HENDSHAKE_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/entries.db", cfg.SQLitePath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.PrettyLog)
	require.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
}

func TestLoadUnvalidatedDefersValidation(t *testing.T) {
	t.Setenv("HENDSHAKE_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)

	cfg, err := LoadUnvalidated()
	require.NoError(t, err)
	require.Equal(t, BackendRedis, cfg.Backend)
	require.Error(t, cfg.Validate())

	cfg.Backend = BackendMemory
	require.NoError(t, cfg.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("HENDSHAKE_CONFIG_FILE", filepath.Join(dir, "nope.yaml"))
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))
		t.Setenv("HENDSHAKE_CONFIG_FILE", path)
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("listen_port: [unterminated"), 0o644))
		t.Setenv("HENDSHAKE_CONFIG_FILE", path)
		_, err := Load()
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "none backend", mutate: func(c *Config) { c.Backend = BackendNone }},
		{name: "memory backend", mutate: func(c *Config) { c.Backend = BackendMemory }},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "etcd" }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.SQLitePath = "" }, wantErr: true},
		{name: "redis without addr", mutate: func(c *Config) { c.Backend = BackendRedis }, wantErr: true},
		{
			name: "redis password required but missing",
			mutate: func(c *Config) {
				c.Backend = BackendRedis
				c.RedisAddr = "localhost:6379"
				c.RedisPasswordRequired = true
			},
			wantErr: true,
		},
		{
			name: "redis ok",
			mutate: func(c *Config) {
				c.Backend = BackendRedis
				c.RedisAddr = "localhost:6379"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Defaults()
	cfg.RedisPassword = "hunter2"

	r := cfg.Redacted()
	require.Equal(t, "***REDACTED***", r.RedisPassword)
	require.Equal(t, "hunter2", cfg.RedisPassword)
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", key: "TEST_BOOL", value: "true", def: false, expected: true},
		{name: "false value", key: "TEST_BOOL_FALSE", value: "false", def: true, expected: false},
		{name: "invalid value uses default", key: "TEST_BOOL_INVALID", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", key: "TEST_BOOL_MISSING", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: "a, b ,c", want: []string{"a", "b", "c"}},
		{in: `"a", 'b', ,`, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		got := splitAndTrim(tt.in)
		require.Equal(t, tt.want, got, "splitAndTrim(%q)", tt.in)
	}
}
