package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/logging"
	"github.com/globalos/accounts/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const principalKey ctxKey = "principal"

// PrincipalFrom returns the caller identity set by the authenticate
// middleware.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// requestLogging tags the request with an ID (echoed in X-Request-ID) and
// logs one line per request once it completes.
func (s *HTTPServer) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := uuid.NewString()
		w.Header().Set(common.RequestIDHeaderName, id)
		ctx := logging.WithRequestID(r.Context(), id)

		lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lrw, r.WithContext(ctx))

		s.logger.Info(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.status,
			"bytes", lrw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", r.RemoteAddr,
		)
	})
}

// authenticate resolves X-Auth-Token into a principal. Requests without a
// valid token pass through anonymously; requireRole decides whether that is
// acceptable.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AccessTokenHeaderName)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		p, ok := s.tokens.Verify(token)
		if !ok {
			s.logger.Debug(r.Context(), "rejected token")
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

func (s *HTTPServer) requireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok || p.Role != role {
			writeJSON(w, http.StatusUnauthorized, errorBody("auth required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingResponseWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

func (w *loggingResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
