package userRepo

import (
	"context"
	"errors"

	"stayhub/models"
)

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate indicates the username or email is already taken.
	ErrDuplicate = errors.New("username or email already registered")
)

// UserRepository provides access to user accounts for the authentication
// collaborator and the administration surface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}
