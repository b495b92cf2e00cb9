package ports

import "github.com/portal/auth-service/internal/core/domain"

// PasswordHasher produces salted one-way digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs and verifies identity tokens. Verify returns
// domain.ErrInvalidToken for every kind of failure.
type TokenIssuer interface {
	Issue(claims domain.Claims) (string, error)
	Verify(token string) (*domain.Claims, error)
}
