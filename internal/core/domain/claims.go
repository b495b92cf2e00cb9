package domain

import "time"

// Claims is the identity asserted by a signed token.
type Claims struct {
	Subject   string
	Name      string
	Email     string
	Avatar    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ClaimsFor derives the token claims from the authenticated user.
func ClaimsFor(u *User) Claims {
	return Claims{
		Subject: u.ID,
		Name:    u.FullName,
		Email:   u.Email,
		Avatar:  u.AvatarURL,
		Role:    RoleMember,
	}
}
