// Package session binds issued tokens to server-side sessions. The session id
// travels in a signed, HTTP-only cookie; the token itself stays in the Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/portal/auth-service/internal/core/domain"
)

const (
	DefaultCookieName = "sid"
	DefaultTTL        = 24 * time.Hour
	minSecretLength   = 32
)

// Store holds at most one token per session id.
type Store interface {
	SetToken(ctx context.Context, sessionID, token string, ttl time.Duration) error
	GetToken(ctx context.Context, sessionID string) (string, error)
	ClearToken(ctx context.Context, sessionID string) error
}

// Options configures a Binder.
type Options struct {
	// Secret signs the session cookie. At least 32 bytes.
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Binder reads and writes the token of the session attached to a request.
type Binder struct {
	store  Store
	codec  *securecookie.SecureCookie
	name   string
	ttl    time.Duration
	secure bool
}

func NewBinder(store Store, opts Options) (*Binder, error) {
	if len(opts.Secret) < minSecretLength {
		return nil, fmt.Errorf("session: secret must be at least %d bytes", minSecretLength)
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	codec := securecookie.New([]byte(opts.Secret), nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(opts.TTL / time.Second))

	return &Binder{
		store:  store,
		codec:  codec,
		name:   opts.CookieName,
		ttl:    opts.TTL,
		secure: opts.Secure,
	}, nil
}

// Bind starts a new session holding token. Any session the request already
// carries is dropped so a planted cookie never inherits the login.
func (b *Binder) Bind(c echo.Context, token string) error {
	ctx := c.Request().Context()
	if prev, ok := b.sessionID(c); ok {
		if err := b.store.ClearToken(ctx, prev); err != nil {
			return err
		}
	}

	sid := uuid.NewString()
	if err := b.store.SetToken(ctx, sid, token, b.ttl); err != nil {
		return err
	}

	encoded, err := b.codec.Encode(b.name, sid)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	c.SetCookie(b.cookie(encoded, int(b.ttl/time.Second)))
	return nil
}

// Token returns the token held by the request's session, or
// domain.ErrNoSession when there is no valid session or it holds no token.
func (b *Binder) Token(c echo.Context) (string, error) {
	sid, ok := b.sessionID(c)
	if !ok {
		return "", domain.ErrNoSession
	}
	token, err := b.store.GetToken(c.Request().Context(), sid)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", domain.ErrNoSession
	}
	return token, nil
}

// Clear drops the session's token and expires the cookie. Requests without a
// session are left untouched apart from the cookie.
func (b *Binder) Clear(c echo.Context) error {
	if sid, ok := b.sessionID(c); ok {
		if err := b.store.ClearToken(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	c.SetCookie(b.cookie("", -1))
	return nil
}

func (b *Binder) sessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(b.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var sid string
	if err := b.codec.Decode(b.name, cookie.Value, &sid); err != nil {
		return "", false
	}
	if _, err := uuid.Parse(sid); err != nil {
		return "", false
	}
	return sid, true
}

func (b *Binder) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     b.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// IsAbsent reports whether err means the request carries no session token.
func IsAbsent(err error) bool {
	return errors.Is(err, domain.ErrNoSession)
}
