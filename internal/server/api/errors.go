package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/users"
	"github.com/labstack/echo/v4"
)

// statusFor maps a service error to the HTTP status and the message shown
// to the user.
func statusFor(err error) (int, string) {
	var inputErr *users.InputError

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Reason
	case errors.Is(err, users.ErrIdentifierRequired):
		return http.StatusBadRequest, "Email or phone is required"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "An account with this email or phone already exists"
	case errors.Is(err, users.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, users.ErrNotVerified):
		return http.StatusForbidden, "Account is not verified"
	case errors.Is(err, common.ErrCodeExpired):
		return http.StatusBadRequest, "Verification code expired"
	case errors.Is(err, common.ErrCodeInvalid):
		return http.StatusBadRequest, "Invalid verification code"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Reset token is invalid or expired"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "Reset token does not belong to this user"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// errorHandler renders every error, including echo's own, as {"message": ...}.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()

	var status int
	var msg string

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		msg = http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
	} else {
		status, msg = statusFor(err)
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "error", err, "path", c.Path())
	} else {
		s.logger.Debug(ctx, "request rejected", "error", err, "status", status)
	}

	if err := c.JSON(status, messageResponse{Message: msg}); err != nil {
		s.logger.Error(ctx, "write error response", "error", err)
	}
}
