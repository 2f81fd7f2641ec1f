// Package services contains application services for the gophauth client.
// This file defines the authentication service: login, registration with
// account verification, the three-step password reset, and logout.
package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/dmitrijs2005/gophauth/internal/client/state"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// Navigator moves the client to another page.
type Navigator interface {
	Navigate(path string)
}

// RegisterInput is what the registration form collects. At least one of
// Email/Phone is set.
type RegisterInput struct {
	Email    string
	Phone    string
	Password string
}

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Login: authenticate, persist the session, mark the state Authenticated
//     and navigate home.
//   - Register: create an unverified account and return its verification session.
//   - VerifyAccount: confirm the account with the delivered code, then go to login.
//   - RequestPasswordReset / VerifyResetCode / SetNewPassword: the reset flow.
//   - Logout: drop the persisted session and the in-memory identity.
//
// Errors are returned to the caller and never shown by the service itself.
// API failures are *client.RequestError.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, in RegisterInput) (*models.VerificationSession, error)
	VerifyAccount(ctx context.Context, vs models.VerificationSession) error
	RequestPasswordReset(ctx context.Context, idType models.IdentifierType, identifier string) (*models.VerificationSession, error)
	VerifyResetCode(ctx context.Context, vs models.VerificationSession) (*models.PasswordResetSession, error)
	SetNewPassword(ctx context.Context, rs models.PasswordResetSession) error
	Logout(ctx context.Context)
	ClearError()
}

type authService struct {
	api      client.APIClient
	sessions session.Store
	store    *state.Store
	nav      Navigator
	logger   logging.Logger
}

// NewAuthService constructs an AuthService. store is the single auth state
// container; sessions is the durable copy of the identity.
func NewAuthService(api client.APIClient, sessions session.Store, store *state.Store, nav Navigator, logger logging.Logger) AuthService {
	return &authService{
		api:      api,
		sessions: sessions,
		store:    store,
		nav:      nav,
		logger:   logger.With("module", "auth_service"),
	}
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	a.store.Dispatch(state.LoginStart())

	resp, err := a.api.Login(ctx, client.LoginRequest{Username: username, Password: password})
	if err == nil && (resp.ID == "" || resp.Token == "") {
		err = &client.RequestError{Op: client.OpLogin, Status: http.StatusOK, Message: client.FallbackMessage(client.OpLogin), Err: common.ErrInvalidToken}
	}
	if err != nil {
		a.logger.Info(ctx, "login failed", "error", err)
		a.store.Dispatch(state.LoginFailure(client.MessageOf(err)))
		return nil, err
	}

	user := &models.User{ID: resp.ID, Email: resp.Email, Phone: resp.Phone, Token: resp.Token}

	a.sessions.Save(ctx, user)
	a.store.Dispatch(state.LoginSuccess(user))
	a.nav.Navigate(common.PathHome)

	return user, nil
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.VerificationSession, error) {
	a.store.Dispatch(state.RegisterStart())

	resp, err := a.api.Register(ctx, client.RegisterRequest{Email: in.Email, Phone: in.Phone, Password: in.Password})
	if err != nil {
		a.logger.Info(ctx, "registration failed", "error", err)
		a.store.Dispatch(state.RegisterFailure(client.MessageOf(err)))
		return nil, err
	}

	// the account exists but is unverified, so nobody is signed in yet
	a.store.Dispatch(state.RegisterSuccess(nil))

	return &models.VerificationSession{UserID: resp.UserID, SessionID: resp.SessionID}, nil
}

func (a *authService) VerifyAccount(ctx context.Context, vs models.VerificationSession) error {
	err := a.api.Onboard(ctx, client.OnboardRequest{UserID: vs.UserID, SessionID: vs.SessionID, Code: vs.Code})
	if err != nil {
		a.logger.Info(ctx, "account verification failed", "user_id", vs.UserID, "error", err)
		return err
	}

	a.nav.Navigate(common.PathLoginPage)
	return nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, idType models.IdentifierType, identifier string) (*models.VerificationSession, error) {
	req := client.ForgotPasswordRequest{}
	if idType == models.IdentifierPhone {
		req.Phone = identifier
	} else {
		req.Email = identifier
	}

	resp, err := a.api.ForgotPassword(ctx, req)
	if err != nil {
		a.logger.Info(ctx, "password reset request failed", "error", err)
		return nil, err
	}

	return &models.VerificationSession{UserID: resp.UserID, SessionID: resp.SessionID}, nil
}

func (a *authService) VerifyResetCode(ctx context.Context, vs models.VerificationSession) (*models.PasswordResetSession, error) {
	resp, err := a.api.VerifyResetCode(ctx, vs.UserID, client.VerifyResetCodeRequest{SessionID: vs.SessionID, Code: vs.Code})
	if err != nil {
		a.logger.Info(ctx, "reset code verification failed", "user_id", vs.UserID, "error", err)
		return nil, err
	}

	return &models.PasswordResetSession{UserID: vs.UserID, Token: resp.Token}, nil
}

func (a *authService) SetNewPassword(ctx context.Context, rs models.PasswordResetSession) error {
	err := a.api.ResetPassword(ctx, rs.UserID, rs.Token, client.ResetPasswordRequest{Password: rs.Password})
	if err != nil {
		a.logger.Info(ctx, "password reset failed", "user_id", rs.UserID, "error", err)
		return err
	}

	a.nav.Navigate(common.PathLoginPage)
	return nil
}

// Logout wipes the persisted session, resets the state and goes home.
func (a *authService) Logout(ctx context.Context) {
	a.sessions.Clear(ctx)
	a.store.Dispatch(state.Logout())
	a.nav.Navigate(common.PathHome)
}

func (a *authService) ClearError() {
	a.store.Dispatch(state.ClearError())
}
