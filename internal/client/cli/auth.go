package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/forms"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askSecret(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// printFieldErrors lists field errors in a stable order.
func (a *App) printFieldErrors(errs validation.Errors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %s: %s\n", k, errs[k].Error())
	}
}

// loginPage prompts for credentials and signs in. Validation and server
// errors are reported here; only input errors are returned.
func (a *App) loginPage(ctx context.Context) error {
	printlnFn("== Sign in ==")
	f := forms.NewLoginFlow(a.authService)

	var err error
	if f.Username, err = a.ask("Email or phone"); err != nil {
		return err
	}
	if f.Password, err = a.askSecret("Password"); err != nil {
		return err
	}

	err = f.Submit(ctx)
	switch {
	case errors.Is(err, forms.ErrValidation):
		a.printFieldErrors(f.Errors)
	case err != nil:
		a.notifier.Failure(err, f.Error)
	default:
		a.notifier.Success(msgLoginOK)
	}
	return nil
}

// registerPage collects account details, then asks for the verification
// code. A wrong code can be retried; an empty one cancels.
func (a *App) registerPage(ctx context.Context) error {
	printlnFn("== Register ==")
	f := forms.NewRegisterFlow(a.authService)

	var err error
	if f.Email, err = a.ask("Email (leave blank to use phone)"); err != nil {
		return err
	}
	if f.Phone, err = a.ask("Phone (optional if email given)"); err != nil {
		return err
	}
	if f.Password, err = a.askSecret("Password"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.askSecret("Confirm password"); err != nil {
		return err
	}

	err = f.Submit(ctx)
	switch {
	case errors.Is(err, forms.ErrValidation):
		a.printFieldErrors(f.Errors)
		return nil
	case err != nil:
		a.notifier.Failure(err, f.Error)
		return nil
	}
	if f.Step != forms.StepVerifying {
		return nil
	}
	a.notifier.Success(msgRegisterOK)

	for !f.Done {
		code, err := a.ask("Verification code (blank to cancel)")
		if err != nil {
			return err
		}
		err = f.SubmitCode(ctx, code)
		switch {
		case errors.Is(err, forms.ErrValidation):
			a.printFieldErrors(f.Errors)
			return nil
		case err != nil:
			a.notifier.Failure(err, f.Error)
		}
	}
	a.notifier.Success(msgVerifyOK)
	return nil
}

// forgotPasswordPage runs request -> verify -> reset. Each step repeats on a
// server error; a blank answer cancels.
func (a *App) forgotPasswordPage(ctx context.Context) error {
	printlnFn("== Reset password ==")
	f := forms.NewForgotPasswordFlow(a.authService)

	kind, err := a.ask("Reset by email or phone? [email]")
	if err != nil {
		return err
	}
	if strings.EqualFold(kind, string(models.IdentifierPhone)) {
		f.SetIdentifierType(models.IdentifierPhone)
	}

	if f.Identifier, err = a.ask(fmt.Sprintf("Your %s", f.IdentifierType)); err != nil {
		return err
	}
	if stop := a.report(f.SubmitRequest(ctx), f.Errors, f.Error); stop || f.Step != forms.StepVerify {
		return nil
	}
	a.notifier.Success(msgResetRequestOK)

	for f.Step == forms.StepVerify {
		code, err := a.ask("Verification code (blank to cancel)")
		if err != nil {
			return err
		}
		if a.report(f.SubmitCode(ctx, code), f.Errors, f.Error) {
			return nil
		}
	}
	a.notifier.Success(msgResetCodeOK)

	for !f.Done {
		pwd, err := a.askSecret("New password (blank to cancel)")
		if err != nil {
			return err
		}
		confirm, err := a.askSecret("Confirm new password")
		if err != nil {
			return err
		}
		if a.report(f.SubmitReset(ctx, pwd, confirm), f.Errors, f.Error) && pwd == "" {
			return nil
		}
	}
	a.notifier.Success(msgResetOK)
	return nil
}

// report prints the outcome of a flow step and tells whether the page should
// stop: validation failures stop, server errors allow a retry.
func (a *App) report(err error, fieldErrs validation.Errors, msg string) bool {
	switch {
	case errors.Is(err, forms.ErrValidation):
		a.printFieldErrors(fieldErrs)
		return true
	case err != nil:
		a.notifier.Failure(err, msg)
	}
	return false
}

// Logout signs out and shows the home page.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.notifier.Success(msgLogoutOK)
	return a.Render(ctx)
}
