package auth

import (
	"context"
	"fmt"

	userRepo "stayhub/database/repository/user"
	"stayhub/models"
)

// AuthService is the authentication collaborator consumed by the session
// manager. It exchanges credentials for a signed bearer token.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.Credentials, error)
	CreateAccount(ctx context.Context, email, username, password string) (*models.Credentials, error)
}

// DefaultAuthService is the production implementation, backed by the user
// repository.
type DefaultAuthService struct {
	Repo userRepo.UserRepository
}

// Error is an authentication failure carrying the transport status code the
// session manager classifies into its error taxonomy.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth error (%d): %s", e.Status, e.Message)
}
