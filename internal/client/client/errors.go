package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Operation names, also used to pick the fallback error message.
const (
	OpLogin           = "login"
	OpRegister        = "register"
	OpOnboard         = "onboard"
	OpForgotPassword  = "forgot-password"
	OpVerifyResetCode = "verify-reset-code"
	OpResetPassword   = "reset-password"
)

var fallbackMessages = map[string]string{
	OpLogin:           "Login failed",
	OpRegister:        "Registration failed",
	OpOnboard:         "Verification failed",
	OpForgotPassword:  "Password reset request failed",
	OpVerifyResetCode: "Code verification failed",
	OpResetPassword:   "Password reset failed",
}

// FallbackMessage is used when the server does not supply a message.
func FallbackMessage(op string) string {
	if m, ok := fallbackMessages[op]; ok {
		return m
	}
	return "Request failed"
}

// RequestError is returned for every failed API call. Message is what the
// user should see: the server's "message" field when present, otherwise the
// operation's fallback text.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Detailed renders the error with operation and status, for logs.
func (e *RequestError) Detailed() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %s: %v", e.Op, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// MessageOf extracts the user-facing message from err.
func MessageOf(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
