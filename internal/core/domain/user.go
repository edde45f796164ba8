package domain

import "time"

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated actor of a request, resolved once at the
// transport boundary. A nil *Identity means there is no session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
