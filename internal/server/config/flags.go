package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/globalos/accounts/internal/flagx"
)

// Flags recognised by parseFlags. Anything else in args is left to other
// parsers.
var serverFlags = []string{"-a", "-d", "-D", "-s", "-l", "-f", "-t"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string     HTTP bind address (e.g. "127.0.0.1:8080")
//	-d string     database DSN or SQLite file path
//	-D string     database driver: sqlite or postgres
//	-s string     path to the token secret file
//	-l string     log level
//	-f string     log format: json or text
//	-t duration   shutdown timeout (e.g. "10s")
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.SecretFile, "s", config.SecretFile, "secret file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "shutdown timeout")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
