// Package state holds the client's authentication state: a pure reducer over
// a small action set, and a Store that serializes dispatches and fans out
// changes to subscribers.
package state

import (
	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

type Status int

const (
	Unauthenticated Status = iota
	Authenticating
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// State is the auth snapshot. Status is Authenticated exactly when User is
// non-nil.
type State struct {
	Status Status
	User   *models.User
	Error  string
}

func (s State) IsAuthenticated() bool {
	return s.Status == Authenticated && s.User != nil
}

type ActionType int

const (
	ActionLoginStart ActionType = iota + 1
	ActionLoginSuccess
	ActionLoginFailure
	ActionRegisterStart
	ActionRegisterSuccess
	ActionRegisterFailure
	ActionLogout
	ActionClearError
)

type Action struct {
	Type  ActionType
	User  *models.User
	Error string
}

func LoginStart() Action { return Action{Type: ActionLoginStart} }
func LoginSuccess(u *models.User) Action { return Action{Type: ActionLoginSuccess, User: u} }
func LoginFailure(msg string) Action { return Action{Type: ActionLoginFailure, Error: msg} }
func RegisterStart() Action { return Action{Type: ActionRegisterStart} }
func RegisterSuccess(u *models.User) Action { return Action{Type: ActionRegisterSuccess, User: u} }
func RegisterFailure(msg string) Action { return Action{Type: ActionRegisterFailure, Error: msg} }
func Logout() Action { return Action{Type: ActionLogout} }
func ClearError() Action { return Action{Type: ActionClearError} }

// Reduce returns the state that follows s after a. Unknown actions leave s
// unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionLoginStart, ActionRegisterStart:
		return State{Status: Authenticating}

	case ActionLoginSuccess, ActionRegisterSuccess:
		// a registration that still needs verification carries no user
		if a.User == nil {
			return State{Status: Unauthenticated}
		}
		u := *a.User
		return State{Status: Authenticated, User: &u}

	case ActionLoginFailure, ActionRegisterFailure:
		return State{Status: Unauthenticated, Error: a.Error}

	case ActionLogout:
		return State{Status: Unauthenticated}

	case ActionClearError:
		s.Error = ""
		return s
	}
	return s
}
