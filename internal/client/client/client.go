package client

import (
	"context"
)

// LoginRequest is sent to the login endpoint. Username is an email or phone.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID    string `json:"_id"`
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// SessionResponse is returned by register and forgot-password; it opens a
// verification session.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type OnboardRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type VerifyResetCodeRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

type ResetTokenResponse struct {
	Token string `json:"token"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// APIClient is the transport contract for the account API. Every error it
// returns is a *RequestError.
type APIClient interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error)
	Onboard(ctx context.Context, req OnboardRequest) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*SessionResponse, error)
	VerifyResetCode(ctx context.Context, userID string, req VerifyResetCodeRequest) (*ResetTokenResponse, error)
	ResetPassword(ctx context.Context, userID, token string, req ResetPasswordRequest) error
}
