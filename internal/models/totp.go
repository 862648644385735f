package models

import "time"

// TOTPSecret stores the 2FA secret for an admin user.
type TOTPSecret struct {
	UserID    int       `json:"user_id"`
	Secret    string    `json:"-"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}
