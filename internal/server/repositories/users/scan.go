package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/dbx"
	"github.com/globalos/accounts/internal/server/models"
)

func getUser(ctx context.Context, db dbx.DBTX, query, userName string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRowContext(ctx, query, userName).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.Salt, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func listUsers(ctx context.Context, db dbx.DBTX, query string) (models.UserRoles, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := models.UserRoles{}
	for rows.Next() {
		var ur models.UserRole
		if err := rows.Scan(&ur.UserName, &ur.Role); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
