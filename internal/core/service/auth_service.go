package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/portal/auth-service/internal/core/domain"
	"github.com/portal/auth-service/internal/core/ports"
)

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	notifier ports.Notifier
	metrics  ports.AuthMetrics
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	notifier ports.Notifier,
	metrics ports.AuthMetrics,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
	}
}

// Register hashes the password, stores the user and sends a verification
// mail. A mail failure is logged and does not fail the registration.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Password == "" {
		s.metrics.RegistrationAttempt("invalid")
		return nil, fmt.Errorf("%w: missing password", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.metrics.RegistrationAttempt("error")
		return nil, err
	}

	user := &domain.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		AvatarURL:    domain.DefaultAvatarURL,
		CreatedAt:    time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		s.metrics.RegistrationAttempt("invalid")
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			s.metrics.RegistrationAttempt("duplicate")
		case errors.Is(err, domain.ErrValidation):
			s.metrics.RegistrationAttempt("invalid")
		default:
			s.metrics.RegistrationAttempt("error")
		}
		return nil, err
	}
	s.metrics.RegistrationAttempt("created")

	if err := s.notifier.SendVerification(ctx, created.Email, created.FullName); err != nil {
		s.metrics.VerificationMail("failed")
		s.log.Warn().Err(err).Str("user_id", created.ID).Msg("verification mail not sent")
	} else {
		s.metrics.VerificationMail("sent")
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks the credentials and issues a token derived from the stored
// user. Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		s.metrics.LoginAttempt("invalid_credentials")
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.metrics.LoginAttempt("invalid_credentials")
			return "", nil, domain.ErrInvalidCredentials
		}
		s.metrics.LoginAttempt("error")
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.LoginAttempt("invalid_credentials")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(user))
	if err != nil {
		s.metrics.LoginAttempt("error")
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.LoginAttempt("success")
	return token, user, nil
}

// CurrentUser loads the user the gate admitted.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, userID)
}
