package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/dbx"
	"github.com/globalos/accounts/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, password_hash, salt, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.PasswordHash, user.Salt, user.Role).Scan(&user.ID)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, salt, role FROM users
		 WHERE username = $1
		 `
	return getUser(ctx, r.db, query, userName)
}

func (r *PostgresRepository) List(ctx context.Context) (models.UserRoles, error) {
	return listUsers(ctx, r.db, `SELECT username, role FROM users ORDER BY id`)
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation
}
