// Package models defines client-side data models shared by the gophauth
// client packages.
package models

// User is the authenticated identity. At least one of Email/Phone is known
// for a given account; both may be set once verified.
type User struct {
	ID    string
	Email string
	Phone string
	// Token is the opaque bearer credential returned by login.
	Token string
}

// DisplayName returns the email, or the phone when no email is known.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Email != "" {
		return u.Email
	}
	return u.Phone
}
