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

type RegisterStep int

const (
	StepCollecting RegisterStep = iota
	StepVerifying
)

// RegisterFlow collects the account details, then the verification code
// delivered to the given email or phone.
type RegisterFlow struct {
	svc services.AuthService

	Step RegisterStep

	Email           string
	Phone           string
	Password        string
	ConfirmPassword string

	Verification models.VerificationSession

	Errors  validation.Errors
	Error   string
	Loading bool
	Done    bool
}

func NewRegisterFlow(svc services.AuthService) *RegisterFlow {
	return &RegisterFlow{svc: svc}
}

func (f *RegisterFlow) validate() validation.Errors {
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.Phone)

	errs := newPasswordErrors(MsgPasswordRequired, f.Password, f.ConfirmPassword)
	if email == "" && phone == "" {
		errs["email"] = errors.New(MsgIdentifierRequired)
		errs["phone"] = errors.New(MsgIdentifierRequired)
	} else {
		errs["email"] = ValidateEmail(email)
		errs["phone"] = ValidatePhone(phone)
	}
	return filter(errs)
}

// Submit validates and creates the account. The flow moves to the verifying
// step only when the server opened a verification session.
func (f *RegisterFlow) Submit(ctx context.Context) error {
	if f.Step != StepCollecting {
		return ErrWrongStep
	}
	f.Error = ""
	f.svc.ClearError()

	if f.Errors = f.validate(); f.Errors != nil {
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	vs, err := f.svc.Register(ctx, services.RegisterInput{
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Password: f.Password,
	})
	if err != nil {
		f.Error = client.MessageOf(err)
		return err
	}

	if vs != nil && vs.SessionID != "" {
		f.Verification = *vs
		f.Step = StepVerifying
	}
	return nil
}

// SubmitCode confirms the account with the delivered code. It is only
// available once registration opened a verification session.
func (f *RegisterFlow) SubmitCode(ctx context.Context, code string) error {
	if f.Step != StepVerifying || f.Done {
		return ErrWrongStep
	}
	f.Error = ""
	f.svc.ClearError()

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
	if err := f.svc.VerifyAccount(ctx, f.Verification); err != nil {
		f.Error = client.MessageOf(err)
		return err
	}
	f.Done = true
	return nil
}
