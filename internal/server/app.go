// Package server wires the account service together: logging, storage,
// migrations, the token codec and the HTTP API, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/globalos/accounts/internal/dbx"
	"github.com/globalos/accounts/internal/logging"
	"github.com/globalos/accounts/internal/server/auth"
	"github.com/globalos/accounts/internal/server/config"
	"github.com/globalos/accounts/internal/server/httpserver"
	"github.com/globalos/accounts/internal/server/repositories/repomanager"
	"github.com/globalos/accounts/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	accounts *services.AccountService
	codec    *auth.Codec
}

// NewLogger builds the process logger from the log settings in c.
func NewLogger(c *config.Config, w io.Writer) (logging.Logger, error) {
	l, err := logging.New(w, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// OpenStore opens the configured database, brings its schema up to date and
// returns the account service on top of it. The caller closes the *sql.DB.
func OpenStore(ctx context.Context, c *config.Config, logger logging.Logger) (*services.AccountService, *sql.DB, error) {
	m, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, nil, err
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return services.NewAccountService(db, m, logger), db, nil
}

func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := NewLogger(c, logOut)
	if err != nil {
		return nil, err
	}

	secret, err := auth.LoadSecret(c.SecretFile)
	if err != nil {
		return nil, err
	}
	codec, err := auth.NewCodec(secret)
	if err != nil {
		return nil, err
	}

	accounts, db, err := OpenStore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, accounts: accounts, codec: codec}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accounts, app.codec, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then closes
// the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"bind", app.config.EndpointAddrHTTP,
		"db_driver", app.config.DatabaseDriver,
	)

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	return runErr
}
