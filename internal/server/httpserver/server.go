// Package httpserver exposes the account store over a small JSON API.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/globalos/accounts/internal/logging"
	"github.com/globalos/accounts/internal/server/auth"
	"github.com/globalos/accounts/internal/server/models"
)

// AccountStore is the part of the account service the API needs.
type AccountStore interface {
	CreateUser(ctx context.Context, username, password, role string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (string, bool, error)
	ListUsers(ctx context.Context) (models.UserRoles, error)
}

// TokenCodec issues and checks bearer tokens.
type TokenCodec interface {
	Sign(username, role string) (string, error)
	Verify(token string) (auth.Principal, bool)
}

type HTTPServer struct {
	address         string
	accounts        AccountStore
	tokens          TokenCodec
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(addr string, l logging.Logger, accounts AccountStore, tokens TokenCodec, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         addr,
		accounts:        accounts,
		tokens:          tokens,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests for up to the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}

// Handler returns the routed API with its middleware chain.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /users", s.createUser)
	mux.HandleFunc("POST /login", s.login)
	mux.Handle("GET /users", s.requireRole(models.RoleAdmin, http.HandlerFunc(s.listUsers)))
	mux.HandleFunc("/", s.notFound)

	return s.requestLogging(s.authenticate(mux))
}
