package users

import "time"

// User is an account known to the development server. Email and Phone are
// optional individually but at least one is set.
type User struct {
	ID           string
	Email        string
	Phone        string
	PasswordHash []byte
	Verified     bool
	CreatedAt    time.Time
}
