// Package users persists account records. Every implementation reports a
// username collision as common.ErrorAlreadyExists and a missing user as
// common.ErrorNotFound; any other failure is wrapped as "db error".
package users

import (
	"context"

	"github.com/globalos/accounts/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// List returns every user ordered by ID.
	List(ctx context.Context) (models.UserRoles, error)
}
