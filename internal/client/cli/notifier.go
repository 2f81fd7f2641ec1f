package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

// Notifier prints one-line success and error notices. The CLI is the only
// place that notifies; services and flows just return results.
type Notifier struct {
	w io.Writer
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Success(msg string) {
	fmt.Fprintf(n.w, "[ok] %s\n", msg)
}

func (n *Notifier) Error(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(n.w, "[error] %s\n", msg)
}

// Failure reports a failed call. When the server could not be reached the
// notice says so instead of repeating the flow's message.
func (n *Notifier) Failure(err error, msg string) {
	if client.IsUnavailable(err) {
		msg = msgUnavailable
	}
	n.Error(msg)
}

const (
	msgUnavailable    = "Cannot reach the server, please try again later"
	msgLoginOK        = "Signed in successfully"
	msgRegisterOK     = "Registration successful, please verify your account"
	msgVerifyOK       = "Account verified, please sign in"
	msgResetRequestOK = "Check your email or phone for the verification code"
	msgResetCodeOK    = "Code accepted"
	msgResetOK        = "Password has been reset"
	msgLogoutOK       = "Signed out"
)
