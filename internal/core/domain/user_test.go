package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestUser_Validate(t *testing.T) {
	u := &User{FullName: "Alice", Email: "a@x.com", PasswordHash: "$2a$10$hash"}
	if err := u.Validate(); err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}

	empty := &User{FullName: "  "}
	err := empty.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, field := range []string{"namaLengkap", "email", "password"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %q in %q", field, err.Error())
		}
	}
}

func TestClaimsFor(t *testing.T) {
	u := &User{ID: "abc", FullName: "Alice", Email: "a@x.com", AvatarURL: DefaultAvatarURL}
	c := ClaimsFor(u)
	if c.Subject != "abc" || c.Name != "Alice" || c.Email != "a@x.com" || c.Avatar != DefaultAvatarURL {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if c.Role != RoleMember {
		t.Fatalf("expected role %s, got %s", RoleMember, c.Role)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@X.Com "); got != "a@x.com" {
		t.Fatalf("got %q", got)
	}
}
