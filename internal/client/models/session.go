package models

// VerificationSession is produced by a registration or password-reset
// request and consumed by the matching verify call. It is never persisted.
type VerificationSession struct {
	UserID    string
	SessionID string
	Code      string
}

// PasswordResetSession carries the one-time reset token issued after a reset
// code is verified, plus the new password being set.
type PasswordResetSession struct {
	UserID          string
	Token           string
	Password        string
	ConfirmPassword string
}

// IdentifierType selects which identifier a form collects.
type IdentifierType string

const (
	IdentifierEmail IdentifierType = "email"
	IdentifierPhone IdentifierType = "phone"
)
