package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Storage backends for the entry snapshot.
const (
	BackendNone   = "none"   // in memory only, nothing persisted
	BackendMemory = "memory" // in-process slot, survives store restarts within one process
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	ListenPort      string        `yaml:"listen_port" toml:"listen_port"`           // ex: ":8080"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"` // ex: 5s
	RequestTimeout  time.Duration `yaml:"request_timeout" toml:"request_timeout"`   // per-request timeout

	LogLevel  string `yaml:"log_level" toml:"log_level"`   // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `yaml:"pretty_log" toml:"pretty_log"` // true => zap dev (color), false => zap prod (JSON)

	// Snapshot storage
	Backend    string `yaml:"backend" toml:"backend"`         // none | memory | redis | sqlite
	Namespace  string `yaml:"namespace" toml:"namespace"`     // redis key prefix / sqlite row key
	SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"` // database file for the sqlite backend

	// Redis
	RedisAddr             string        `yaml:"redis_addr" toml:"redis_addr"` // ex: "localhost:6379"
	RedisUser             string        `yaml:"redis_username" toml:"redis_username"`
	RedisPassword         string        `yaml:"redis_password" toml:"redis_password"`
	RedisPasswordRequired bool          `yaml:"redis_password_required" toml:"redis_password_required"`
	RedisDB               int           `yaml:"redis_db" toml:"redis_db"`
	RedisDT               time.Duration `yaml:"redis_dial_timeout" toml:"redis_dial_timeout"`
	RedisRT               time.Duration `yaml:"redis_read_timeout" toml:"redis_read_timeout"`
	RedisWT               time.Duration `yaml:"redis_write_timeout" toml:"redis_write_timeout"`
	RedisMaxWait          time.Duration `yaml:"redis_max_wait" toml:"redis_max_wait"`               // max wait between retries
	RedisPingTimeout      time.Duration `yaml:"redis_ping_timeout" toml:"redis_ping_timeout"`       // timeout for each ping attempt
	RedisPoolSize         int           `yaml:"redis_pool_size" toml:"redis_pool_size"`             // connection pool size
	RedisConnectTimeout   time.Duration `yaml:"redis_connect_timeout" toml:"redis_connect_timeout"` // total time to retry connecting
	RedisRetryInterval    time.Duration `yaml:"redis_retry_interval" toml:"redis_retry_interval"`   // initial wait, grows exponentially
	RedisWarnThreshold    int           `yaml:"redis_warn_threshold" toml:"redis_warn_threshold"`   // warn after this many attempts

	// HTTP access
	AllowedHosts    []string `yaml:"allowed_hosts" toml:"allowed_hosts"`           // optional Host header allow-list
	AllowedCIDRS    []string `yaml:"allowed_cidrs" toml:"allowed_cidrs"`           // optional, applies to mutations and infra
	TrustProxy      bool     `yaml:"trust_proxy" toml:"trust_proxy"`               // trust X-Forwarded-For
	CORSOrigins     []string `yaml:"cors_origins" toml:"cors_origins"`             // "*" allows any origin
	RateLimitBurst  int      `yaml:"rate_limit_burst" toml:"rate_limit_burst"`     // mutations per client burst, 0 disables
	RateLimitPerMin int      `yaml:"rate_limit_per_min" toml:"rate_limit_per_min"` // refill rate
	MetricsEnabled  bool     `yaml:"metrics_enabled" toml:"metrics_enabled"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		ListenPort:      ":8080",
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  2 * time.Second,

		LogLevel:  "info",
		PrettyLog: true,

		Backend:    BackendSQLite,
		Namespace:  "hendshake",
		SQLitePath: defaultSQLitePath(),

		RedisUser:             "default",
		RedisPasswordRequired: false,
		RedisDT:               5 * time.Second,
		RedisRT:               3 * time.Second,
		RedisWT:               3 * time.Second,
		RedisMaxWait:          10 * time.Second,
		RedisPingTimeout:      5 * time.Second,
		RedisPoolSize:         10,
		RedisConnectTimeout:   30 * time.Second,
		RedisRetryInterval:    2 * time.Second,
		RedisWarnThreshold:    3,

		TrustProxy:      false,
		CORSOrigins:     []string{"*"},
		RateLimitBurst:  30,
		RateLimitPerMin: 60,
		MetricsEnabled:  true,
	}
}

// Load builds and validates the configuration. See LoadUnvalidated.
func Load() (*Config, error) {
	cfg, err := LoadUnvalidated()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnvalidated layers defaults, the optional file named by
// HENDSHAKE_CONFIG_FILE (YAML or TOML by extension), then env vars.
// Callers applying their own overrides must call Validate afterwards.
func LoadUnvalidated() (*Config, error) {
	cfg := Defaults()

	if path := getenv("HENDSHAKE_CONFIG_FILE", ""); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	// Server settings
	cfg.ListenPort = getenv("HENDSHAKE_LISTEN_PORT", cfg.ListenPort)
	cfg.ShutdownTimeout = mustDuration("HENDSHAKE_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.RequestTimeout = mustDuration("HENDSHAKE_REQUEST_TIMEOUT", cfg.RequestTimeout)

	// Logging
	cfg.LogLevel = getenv("HENDSHAKE_LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLog = mustBool("HENDSHAKE_PRETTY_LOG", cfg.PrettyLog)

	// Storage
	cfg.Backend = strings.ToLower(getenv("HENDSHAKE_BACKEND", cfg.Backend))
	cfg.Namespace = getenv("HENDSHAKE_NAMESPACE", cfg.Namespace)
	cfg.SQLitePath = getenv("HENDSHAKE_SQLITE_PATH", cfg.SQLitePath)

	// Redis settings
	cfg.RedisAddr = getenv("HENDSHAKE_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisUser = getenv("HENDSHAKE_REDIS_USERNAME", cfg.RedisUser)
	cfg.RedisPassword = getenv("HENDSHAKE_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisPasswordRequired = mustBool("HENDSHAKE_REDIS_PASSWORD_REQUIRED", cfg.RedisPasswordRequired)
	cfg.RedisDB = getenvInt("HENDSHAKE_REDIS_DB", cfg.RedisDB)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", cfg.RedisDT)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", cfg.RedisRT)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", cfg.RedisWT)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", cfg.RedisMaxWait)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", cfg.RedisPingTimeout)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", cfg.RedisPoolSize)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", cfg.RedisConnectTimeout)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", cfg.RedisRetryInterval)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", cfg.RedisWarnThreshold)

	// Access restrictions
	cfg.AllowedHosts = getenvSlice("HENDSHAKE_ALLOWED_HOSTS", cfg.AllowedHosts)
	cfg.AllowedCIDRS = getenvSlice("HENDSHAKE_ALLOWED_CIDRS", cfg.AllowedCIDRS)
	cfg.TrustProxy = mustBool("HENDSHAKE_TRUST_PROXY", cfg.TrustProxy)
	cfg.CORSOrigins = getenvSlice("HENDSHAKE_CORS_ORIGINS", cfg.CORSOrigins)
	cfg.RateLimitBurst = getenvInt("HENDSHAKE_RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.RateLimitPerMin = getenvInt("HENDSHAKE_RATE_LIMIT_PER_MIN", cfg.RateLimitPerMin)
	cfg.MetricsEnabled = mustBool("HENDSHAKE_METRICS_ENABLED", cfg.MetricsEnabled)
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNone, BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite backend requires HENDSHAKE_SQLITE_PATH")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis backend requires HENDSHAKE_REDIS_ADDR")
		}
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			return fmt.Errorf("HENDSHAKE_REDIS_PASSWORD is required when HENDSHAKE_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		return fmt.Errorf("unknown backend %q (want none, memory, redis or sqlite)", c.Backend)
	}
	return nil
}

// Redacted returns a copy safe for logging.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	return cp
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse toml config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
	return nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hendshake.db"
	}
	return filepath.Join(home, ".hendshake", "hendshake.db")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvSlice(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		return splitAndTrim(v)
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
