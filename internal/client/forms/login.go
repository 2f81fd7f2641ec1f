package forms

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	validation "github.com/go-ozzo/ozzo-validation"
)

// LoginFlow is the single-step sign-in form. Username may be an email or a
// phone number.
type LoginFlow struct {
	svc services.AuthService

	Username string
	Password string

	Errors  validation.Errors
	Error   string
	Loading bool
}

func NewLoginFlow(svc services.AuthService) *LoginFlow {
	return &LoginFlow{svc: svc}
}

func (f *LoginFlow) validate() validation.Errors {
	return filter(validation.Errors{
		"username": validation.Validate(strings.TrimSpace(f.Username), validation.Required.Error(MsgIdentifierRequired)),
		"password": validation.Validate(f.Password, validation.Required.Error(MsgPasswordRequired)),
	})
}

// Submit validates the form and signs in. On success the service has
// already navigated away.
func (f *LoginFlow) Submit(ctx context.Context) error {
	f.Error = ""
	f.svc.ClearError()

	if f.Errors = f.validate(); f.Errors != nil {
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	if _, err := f.svc.Login(ctx, strings.TrimSpace(f.Username), f.Password); err != nil {
		f.Error = client.MessageOf(err)
		return err
	}
	return nil
}
