package ports

import (
	"context"

	"github.com/portal/auth-service/internal/core/domain"
)

// UserRepository persists user accounts. Create must report a duplicate email
// as domain.ErrUserExists based on the store's own uniqueness guarantee.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
