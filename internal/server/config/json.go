package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/globalos/accounts/internal/flagx"
	"github.com/globalos/accounts/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only keys present in
// the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDriver   *string         `json:"database_driver"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretFile       *string         `json:"secret_file"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file named by -c or -config. When
// neither flag is given nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.JsonConfigFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretFile, c.SecretFile)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
