package domain

import (
	"fmt"
	"strings"
	"time"
)

// RoleMember is the only role handed out today. Every token carries it.
const RoleMember = "member"

// DefaultAvatarURL is assigned to users that registered without a photo.
const DefaultAvatarURL = "/public/images/user_default.png"

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"namaLengkap"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"url_photo"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the fields a stored user must always carry.
func (u *User) Validate() error {
	var missing []string
	if strings.TrimSpace(u.FullName) == "" {
		missing = append(missing, "namaLengkap")
	}
	if strings.TrimSpace(u.Email) == "" {
		missing = append(missing, "email")
	}
	if u.PasswordHash == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeEmail is applied before an email is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
