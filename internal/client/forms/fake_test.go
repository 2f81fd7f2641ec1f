package forms

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

// fakeAuth records calls and returns preset results.
type fakeAuth struct {
	calls []string

	loginErr error

	registerRet *models.VerificationSession
	registerErr error
	lastReg     services.RegisterInput

	verifyAccountErr error
	lastVerify       models.VerificationSession

	resetReqRet *models.VerificationSession
	resetReqErr error
	lastIDType  models.IdentifierType
	lastID      string

	resetCodeRet *models.PasswordResetSession
	resetCodeErr error

	setPwdErr error
	lastReset models.PasswordResetSession

	clearErrors int
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*models.User, error) {
	f.calls = append(f.calls, "login:"+username)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.User{ID: "u1", Email: username, Token: "t1"}, nil
}

func (f *fakeAuth) Register(_ context.Context, in services.RegisterInput) (*models.VerificationSession, error) {
	f.calls = append(f.calls, "register")
	f.lastReg = in
	return f.registerRet, f.registerErr
}

func (f *fakeAuth) VerifyAccount(_ context.Context, vs models.VerificationSession) error {
	f.calls = append(f.calls, "verify-account")
	f.lastVerify = vs
	return f.verifyAccountErr
}

func (f *fakeAuth) RequestPasswordReset(_ context.Context, t models.IdentifierType, id string) (*models.VerificationSession, error) {
	f.calls = append(f.calls, "request-reset")
	f.lastIDType, f.lastID = t, id
	return f.resetReqRet, f.resetReqErr
}

func (f *fakeAuth) VerifyResetCode(_ context.Context, vs models.VerificationSession) (*models.PasswordResetSession, error) {
	f.calls = append(f.calls, "verify-reset-code")
	f.lastVerify = vs
	return f.resetCodeRet, f.resetCodeErr
}

func (f *fakeAuth) SetNewPassword(_ context.Context, rs models.PasswordResetSession) error {
	f.calls = append(f.calls, "set-password")
	f.lastReset = rs
	return f.setPwdErr
}

func (f *fakeAuth) Logout(context.Context) { f.calls = append(f.calls, "logout") }

func (f *fakeAuth) ClearError() { f.clearErrors++ }
