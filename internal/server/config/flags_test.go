package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "0.0.0.0:80", "-d", "/data/a.db", "-D", "sqlite",
				"-s", "/data/key", "-l", "debug", "-f", "text", "-t", "2s",
			},
			want: &Config{
				EndpointAddrHTTP: "0.0.0.0:80",
				DatabaseDriver:   "sqlite",
				DatabaseDSN:      "/data/a.db",
				SecretFile:       "/data/key",
				LogLevel:         "debug",
				LogFormat:        "text",
				ShutdownTimeout:  2 * time.Second,
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-u", "alice", "-a=:9000", "useradd"},
			want: func() *Config {
				c := defaults()
				c.EndpointAddrHTTP = ":9000"
				return c
			}(),
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "forever"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}
