package repo

import (
	"context"
	"errors"

	"github.com/klassico/storefront/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicatedUsername = errors.New("username already exists")
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}
