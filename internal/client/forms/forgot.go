package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	validation "github.com/go-ozzo/ozzo-validation"
)

type ResetStep int

const (
	StepRequest ResetStep = iota
	StepVerify
	StepReset
)

func (s ResetStep) String() string {
	switch s {
	case StepVerify:
		return "verify"
	case StepReset:
		return "reset"
	default:
		return "request"
	}
}

var ErrWrongStep = errors.New("action not available at this step")

// ForgotPasswordFlow walks request -> verify -> reset. A failed call leaves
// the flow where it was.
type ForgotPasswordFlow struct {
	svc services.AuthService

	Step           ResetStep
	IdentifierType models.IdentifierType
	Identifier     string

	Verification models.VerificationSession
	Reset        models.PasswordResetSession

	Errors  validation.Errors
	Error   string
	Loading bool
	Done    bool
}

func NewForgotPasswordFlow(svc services.AuthService) *ForgotPasswordFlow {
	return &ForgotPasswordFlow{svc: svc, IdentifierType: models.IdentifierEmail}
}

// SetIdentifierType switches between email and phone, dropping what was
// typed so far.
func (f *ForgotPasswordFlow) SetIdentifierType(t models.IdentifierType) {
	f.IdentifierType = t
	f.Identifier = ""
	f.Errors = nil
	f.Error = ""
}

func (f *ForgotPasswordFlow) begin() {
	f.Error = ""
	f.svc.ClearError()
}

func (f *ForgotPasswordFlow) identifierRules() []validation.Rule {
	if f.IdentifierType == models.IdentifierPhone {
		return []validation.Rule{validation.Required.Error(MsgPhoneRequired), phoneRule}
	}
	return []validation.Rule{validation.Required.Error(MsgEmailRequired), emailRule}
}

// SubmitRequest asks for a reset code for the identifier.
func (f *ForgotPasswordFlow) SubmitRequest(ctx context.Context) error {
	if f.Step != StepRequest {
		return ErrWrongStep
	}
	f.begin()

	id := strings.TrimSpace(f.Identifier)
	f.Errors = filter(validation.Errors{
		"identifier": validation.Validate(id, f.identifierRules()...),
	})
	if f.Errors != nil {
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	vs, err := f.svc.RequestPasswordReset(ctx, f.IdentifierType, id)
	if err != nil {
		f.Error = client.MessageOf(err)
		return err
	}

	if vs != nil && vs.SessionID != "" {
		f.Verification = *vs
		f.Step = StepVerify
	}
	return nil
}

// SubmitCode exchanges the delivered code for a one-time reset token.
func (f *ForgotPasswordFlow) SubmitCode(ctx context.Context, code string) error {
	if f.Step != StepVerify {
		return ErrWrongStep
	}
	f.begin()

	code = strings.TrimSpace(code)
	f.Errors = filter(validation.Errors{
		"code": validation.Validate(code, validation.Required.Error(MsgCodeRequired)),
	})
	if f.Errors != nil {
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	f.Verification.Code = code
	rs, err := f.svc.VerifyResetCode(ctx, f.Verification)
	if err != nil {
		f.Error = client.MessageOf(err)
		return err
	}

	if rs != nil && rs.Token != "" {
		f.Reset = *rs
		f.Step = StepReset
	}
	return nil
}

// SubmitReset sets the new password using the reset token.
func (f *ForgotPasswordFlow) SubmitReset(ctx context.Context, password, confirm string) error {
	if f.Step != StepReset {
		return ErrWrongStep
	}
	f.begin()

	if f.Errors = filter(newPasswordErrors(MsgNewPasswordReq, password, confirm)); f.Errors != nil {
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	f.Reset.Password = password
	f.Reset.ConfirmPassword = confirm
	if f.Reset.UserID == "" {
		f.Reset.UserID = f.Verification.UserID
	}

	if err := f.svc.SetNewPassword(ctx, f.Reset); err != nil {
		f.Error = client.MessageOf(err)
		return err
	}
	f.Done = true
	return nil
}
