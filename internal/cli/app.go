// Package cli implements accountsctl, the operator tool for the account
// store. It talks to the database directly, using the same configuration
// layers as the server.
//
//	accountsctl [-c file] [-D driver] [-d dsn] [-s secret] <command> [flags]
//
// Commands:
//
//	useradd -u NAME [-r ROLE]    create a user; the password is read from the terminal
//	users                        list users and roles in creation order
//	gensecret -o PATH [-n BYTES] write a new token signing secret
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/globalos/accounts/internal/flagx"
	"github.com/globalos/accounts/internal/logging"
	"github.com/globalos/accounts/internal/server"
	"github.com/globalos/accounts/internal/server/config"
	"github.com/globalos/accounts/internal/server/services"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitFail  = 1
	ExitUsage = 2
)

var errUsage = errors.New("usage")

type App struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewApp(stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Run executes the command in args (os.Args[1:]) and returns the process
// exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	global, name, rest := flagx.SplitCommand(args)

	var err error
	switch name {
	case "useradd":
		err = a.UserAdd(ctx, global, rest)
	case "users":
		err = a.Users(ctx, global, rest)
	case "gensecret":
		err = a.GenSecret(rest)
	case "", "help":
		a.usage()
		return ExitUsage
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n", name)
		a.usage()
		return ExitUsage
	}

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(a.stderr, err)
		return ExitUsage
	default:
		fmt.Fprintln(a.stderr, "error:", err)
		return ExitFail
	}
}

func (a *App) usage() {
	fmt.Fprint(a.stderr, `usage: accountsctl [-c file] [-D driver] [-d dsn] <command> [flags]

commands:
  useradd -u NAME [-r ROLE]     create a user (password prompted)
  users                         list users and roles
  gensecret -o PATH [-n BYTES]  write a new token signing secret
`)
}

// openStore loads configuration from the global flags and opens the account
// store. Logs go to stderr so stdout stays machine-readable.
func (a *App) openStore(ctx context.Context, global []string) (*services.AccountService, func(), error) {
	cfg, err := config.LoadConfig(global)
	if err != nil {
		return nil, nil, err
	}
	// Operator output is the command result; only problems are logged.
	cfg.LogLevel = "warn"
	cfg.LogFormat = logging.FormatText

	logger, err := server.NewLogger(cfg, a.stderr)
	if err != nil {
		return nil, nil, err
	}
	accounts, db, err := server.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return accounts, func() { _ = db.Close() }, nil
}

// Main is the entry point used by cmd/cli.
func Main() {
	os.Exit(NewApp(os.Stdin, os.Stdout, os.Stderr).Run(context.Background(), os.Args[1:]))
}
