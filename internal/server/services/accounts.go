package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/cryptox"
	"github.com/globalos/accounts/internal/dbx"
	"github.com/globalos/accounts/internal/logging"
	"github.com/globalos/accounts/internal/server/models"
	"github.com/globalos/accounts/internal/server/repositories/repomanager"
)

// AccountService is the account store: it creates users, checks their
// passwords and lists them. Negative outcomes (bad input, duplicate name,
// wrong password) are reported as values; only storage failures are errors.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger

	hashPassword   func(password string) (hash, salt string, err error)
	verifyPassword func(password, hash, salt string) bool
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AccountService {
	return &AccountService{
		db:             db,
		repomanager:    m,
		log:            log.With("module", "accounts"),
		hashPassword:   cryptox.HashPassword,
		verifyPassword: cryptox.VerifyPassword,
	}
}

// CreateUser stores a new user. It returns false without touching the store
// when username or password is empty, and false when the name is taken. An
// empty role means models.RoleUser.
func (s *AccountService) CreateUser(ctx context.Context, username, password, role string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	if role == "" {
		role = models.RoleUser
	}

	hash, salt, err := s.hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{UserName: username, PasswordHash: hash, Salt: salt, Role: role}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Info(ctx, "user already exists", "username", username)
			return false, nil
		}
		s.log.Error(ctx, "create user failed", "username", username, "error", err)
		return false, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user created", "username", username, "role", role, "id", user.ID)
	return true, nil
}

// Authenticate returns the user's role when password matches. Unknown user
// and wrong password give the same ("", false, nil) result.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, bool, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).GetUserByLogin(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the response time close to that of a wrong password
			s.verifyPassword(password, dummyHash, dummySalt)
			s.log.Info(ctx, "authentication failed", "username", username)
			return "", false, nil
		}
		s.log.Error(ctx, "lookup user failed", "username", username, "error", err)
		return "", false, fmt.Errorf("error loading user: %w", err)
	}

	if !s.verifyPassword(password, user.PasswordHash, user.Salt) {
		s.log.Info(ctx, "authentication failed", "username", username)
		return "", false, nil
	}
	return user.Role, true, nil
}

// ListUsers returns every user with their role in creation order.
func (s *AccountService) ListUsers(ctx context.Context) (models.UserRoles, error) {
	var list models.UserRoles
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		list, err = s.repomanager.Users(tx).List(ctx)
		return err
	})
	if err != nil {
		s.log.Error(ctx, "list users failed", "error", err)
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

const (
	dummySalt = "00000000000000000000000000000000"
	dummyHash = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
)
