package ports

import (
	"context"

	"github.com/portal/auth-service/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
