package httpserver

import (
	"net/http"
	"strings"

	"github.com/globalos/accounts/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type listUsersResponse struct {
	Users models.UserRoles `json:"users"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusBody("ok"))
}

func (s *HTTPServer) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := decodeCredentials(w, r)

	created, err := s.accounts.CreateUser(ctx, strings.TrimSpace(req.Username), req.Password, "")
	if err != nil {
		s.logger.Error(ctx, "create user", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if !created {
		writeJSON(w, http.StatusBadRequest, errorBody("user exists or invalid"))
		return
	}
	writeJSON(w, http.StatusCreated, statusBody("user created"))
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := decodeCredentials(w, r)

	role, ok, err := s.accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Error(ctx, "authenticate", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("invalid credentials"))
		return
	}

	token, err := s.tokens.Sign(req.Username, role)
	if err != nil {
		// the name or role cannot be carried in a token
		s.logger.Warn(ctx, "cannot issue token", "username", req.Username, "error", err)
		writeJSON(w, http.StatusUnauthorized, errorBody("invalid credentials"))
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Role: role})
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.accounts.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "list users", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, listUsersResponse{Users: users})
}

func (s *HTTPServer) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody("not found"))
}
