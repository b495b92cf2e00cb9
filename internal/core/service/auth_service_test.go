package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/portal/auth-service/internal/core/domain"
	"github.com/portal/auth-service/internal/core/ports"
	"github.com/portal/auth-service/internal/infrastructure/security"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	findErr error
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = string(rune('a' + r.nextID))
	r.byEmail[copy.Email] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubNotifier struct {
	err  error
	sent []string
}

func (n *stubNotifier) SendVerification(_ context.Context, email, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, email)
	return nil
}

type stubMetrics struct {
	registrations []string
	logins        []string
	mails         []string
}

func (m *stubMetrics) RegistrationAttempt(result string) { m.registrations = append(m.registrations, result) }
func (m *stubMetrics) LoginAttempt(result string)        { m.logins = append(m.logins, result) }
func (m *stubMetrics) VerificationMail(result string)    { m.mails = append(m.mails, result) }

func newTestService(t *testing.T, repo *stubUserRepo, notifier *stubNotifier) (*AuthService, *security.TokenService) {
	t.Helper()
	svc, tokens, _ := newTestServiceWithMetrics(t, repo, notifier)
	return svc, tokens
}

func newTestServiceWithMetrics(t *testing.T, repo *stubUserRepo, notifier *stubNotifier) (*AuthService, *security.TokenService, *stubMetrics) {
	t.Helper()
	tokens, err := security.NewTokenService("secret", "test", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	m := &stubMetrics{}
	return NewAuthService(repo, security.NewBcryptHasher(), tokens, notifier, m, zerolog.Nop()), tokens, m
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{}
	svc, _ := newTestService(t, repo, notifier)

	user, err := svc.Register(context.Background(), ports.RegisterInput{FullName: "Alice", Email: "A@x.com ", Password: "pw1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if user.AvatarURL != domain.DefaultAvatarURL {
		t.Fatalf("expected default avatar, got %q", user.AvatarURL)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "a@x.com" {
		t.Fatalf("expected one verification mail, got %v", notifier.sent)
	}
}

func TestAuthService_Register_MailFailureIsNotFatal(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo, &stubNotifier{err: errors.New("smtp down")})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{FullName: "Bob", Email: "b@x.com", Password: "pw"}); err != nil {
		t.Fatalf("expected success despite mail failure, got %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected user to be stored")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestService(t, newStubUserRepo(), &stubNotifier{})

	cases := []ports.RegisterInput{
		{FullName: "", Email: "a@x.com", Password: "pw"},
		{FullName: "Alice", Email: "", Password: "pw"},
		{FullName: "Alice", Email: "a@x.com", Password: ""},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo, &stubNotifier{})

	in := ports.RegisterInput{FullName: "Carol", Email: "c@x.com", Password: "pw"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	in.Password = "other"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single stored user, got %d", len(repo.byEmail))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestService(t, repo, &stubNotifier{})

	registered, err := svc.Register(context.Background(), ports.RegisterInput{FullName: "Dave", Email: "d@x.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "d@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != registered.ID || claims.Name != "Dave" || claims.Role != domain.RoleMember {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo, &stubNotifier{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{FullName: "Eve", Email: "e@x.com", Password: "goodpass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPw := svc.Login(context.Background(), "e@x.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@x.com", "goodpass")
	_, _, empty := svc.Login(context.Background(), "", "")

	for _, err := range []error{wrongPw, unknown, empty} {
		if err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc, _ := newTestService(t, repo, &stubNotifier{})

	_, _, err := svc.Login(context.Background(), "a@x.com", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo, &stubNotifier{})

	registered, err := svc.Register(context.Background(), ports.RegisterInput{FullName: "Finn", Email: "f@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), registered.ID)
	if err != nil || got.Email != "f@x.com" {
		t.Fatalf("unexpected result: %+v %v", got, err)
	}

	if _, err := svc.CurrentUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for empty id, got %v", err)
	}
}

func TestAuthService_RecordsOutcomes(t *testing.T) {
	notifier := &stubNotifier{}
	svc, _, m := newTestServiceWithMetrics(t, newStubUserRepo(), notifier)
	ctx := context.Background()

	in := ports.RegisterInput{FullName: "Gus", Email: "g@x.com", Password: "pw"}
	_, _ = svc.Register(ctx, in)
	_, _ = svc.Register(ctx, in)
	_, _ = svc.Register(ctx, ports.RegisterInput{FullName: "Gus", Email: "g2@x.com"})
	notifier.err = errors.New("smtp down")
	_, _ = svc.Register(ctx, ports.RegisterInput{FullName: "Hal", Email: "h@x.com", Password: "pw"})

	_, _, _ = svc.Login(ctx, "g@x.com", "pw")
	_, _, _ = svc.Login(ctx, "g@x.com", "wrong")

	wantRegs := []string{"created", "duplicate", "invalid", "created"}
	if fmt.Sprint(m.registrations) != fmt.Sprint(wantRegs) {
		t.Fatalf("registrations: expected %v, got %v", wantRegs, m.registrations)
	}
	wantMails := []string{"sent", "failed"}
	if fmt.Sprint(m.mails) != fmt.Sprint(wantMails) {
		t.Fatalf("mails: expected %v, got %v", wantMails, m.mails)
	}
	wantLogins := []string{"success", "invalid_credentials"}
	if fmt.Sprint(m.logins) != fmt.Sprint(wantLogins) {
		t.Fatalf("logins: expected %v, got %v", wantLogins, m.logins)
	}
}
