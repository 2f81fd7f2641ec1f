// Package common contains shared constants, sentinel errors and small helpers
// used across gophauth components.
package common

// API routes shared by the HTTP client and the development server.
const (
	APIPrefix = "/api/v1/users"

	PathLogin          = APIPrefix + "/login"
	PathRegister       = APIPrefix + "/register"
	PathOnboard        = APIPrefix + "/onboard"
	PathForgotPassword = APIPrefix + "/forgot-password"
	// PathResetPasswordFmt takes the user id.
	PathResetPasswordFmt = APIPrefix + "/%s/reset-password"
)

// RequestIDHeaderName carries the client-generated request id.
const RequestIDHeaderName = "X-Request-ID"

// Client-side navigation targets.
const (
	PathHome           = "/"
	PathProfile        = "/profile"
	PathLoginPage      = "/auth/login"
	PathRegisterPage   = "/auth/register"
	PathForgotPassPage = "/auth/forgot-password"
)
