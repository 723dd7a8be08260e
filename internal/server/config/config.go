// Package config builds the runtime configuration of the account service
// from defaults, an optional JSON file, environment variables and
// command-line flags, applied in that order.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings shared by the HTTP server and the admin CLI.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the JSON API.
//   - DatabaseDriver: "sqlite" (default) or "postgres".
//   - DatabaseDSN: SQLite file path or PostgreSQL DSN.
//   - SecretFile: file holding the token signing secret (at least 32 bytes).
//   - LogLevel / LogFormat: slog level name and "json" or "text".
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP string        `env:"GLOBAL_OS_BIND"`
	DatabaseDriver   string        `env:"GLOBAL_OS_DB_DRIVER"`
	DatabaseDSN      string        `env:"GLOBAL_OS_DB"`
	SecretFile       string        `env:"GLOBAL_OS_SECRET_FILE"`
	LogLevel         string        `env:"GLOBAL_OS_LOG_LEVEL"`
	LogFormat        string        `env:"GLOBAL_OS_LOG_FORMAT"`
	ShutdownTimeout  time.Duration `env:"GLOBAL_OS_SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with the production defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = "127.0.0.1:8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "/var/lib/global-os/accounts.db"
	c.SecretFile = "/etc/global-os/api-secret.key"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config from args (usually os.Args[1:]) by applying
// defaults, then the JSON file named by -c/-config, then the environment and
// finally the flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.EndpointAddrHTTP == "" {
		return fmt.Errorf("config: empty bind address")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("config: empty database DSN")
	}
	if c.SecretFile == "" {
		return fmt.Errorf("config: empty secret file path")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("config: negative shutdown timeout %s", c.ShutdownTimeout)
	}
	return nil
}
