package models

import "time"

// RefreshToken is a server-side record of an issued refresh token. A token
// is valid only while its row exists and has not expired.
type RefreshToken struct {
	ID          string
	PrincipalID string
	Role        Role
	Token       string
	Expires     time.Time
	CreatedAt   time.Time
}
