// Package forms implements the login, registration and password-reset form
// flows: local validation first, then the matching AuthService call.
package forms

import (
	"errors"
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ErrValidation is returned by a submit that stopped at local validation.
// The per-field messages are in the flow's Errors.
var ErrValidation = errors.New("validation failed")

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10,11}$`)
)

const (
	MsgIdentifierRequired = "Please enter an email or phone number"
	MsgEmailRequired      = "Please enter an email"
	MsgPhoneRequired      = "Please enter a phone number"
	MsgInvalidEmail       = "Invalid email"
	MsgInvalidPhone       = "Invalid phone number"
	MsgPasswordRequired   = "Please enter a password"
	MsgNewPasswordReq     = "Please enter a new password"
	MsgPasswordWeak       = "Password must be at least 8 characters and include upper and lower case letters and a digit"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgCodeRequired       = "Please enter the verification code"
)

var (
	emailRule = validation.Match(emailRegex).Error(MsgInvalidEmail)
	phoneRule = validation.Match(phoneRegex).Error(MsgInvalidPhone)

	// letters and digits only, at least 8, with a lower, an upper and a digit
	passwordRules = []validation.Rule{
		validation.Length(8, 0).Error(MsgPasswordWeak),
		is.Alphanumeric.Error(MsgPasswordWeak),
		validation.NewStringRule(hasPasswordClasses, MsgPasswordWeak),
	}
)

func hasPasswordClasses(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// ValidateEmail reports a non-empty value that is not an email address.
func ValidateEmail(s string) error {
	return validation.Validate(s, emailRule)
}

func ValidatePhone(s string) error {
	return validation.Validate(s, phoneRule)
}

// ValidatePassword reports a non-empty password that fails the strength rules.
func ValidatePassword(s string) error {
	return validation.Validate(s, passwordRules...)
}

func matches(other string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != other {
			return errors.New(MsgPasswordMismatch)
		}
		return nil
	}
}

func newPasswordErrors(required, password, confirm string) validation.Errors {
	rules := append([]validation.Rule{validation.Required.Error(required)}, passwordRules...)
	return validation.Errors{
		"password":        validation.Validate(password, rules...),
		"confirmPassword": validation.Validate(confirm, validation.By(matches(password))),
	}
}

// filter drops nil entries; a nil result means the form is valid.
func filter(errs validation.Errors) validation.Errors {
	if err := errs.Filter(); err != nil {
		return errs
	}
	return nil
}
