// Package guard decides whether a page may render for the current auth
// state. Guards are pure: they never navigate themselves, they return a
// Decision that the router acts on.
package guard

import (
	"github.com/dmitrijs2005/gophauth/internal/client/state"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

type Action int

const (
	Render Action = iota
	Loading
	Redirect
)

func (a Action) String() string {
	switch a {
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

// Location is where the user is, plus the page they were sent away from.
type Location struct {
	Path string
	From string
}

// Decision is the outcome of a guard. To and From are only set for Redirect;
// From carries the original path so a later redirect can return there.
type Decision struct {
	Action Action
	To     string
	From   string
}

type Guard interface {
	Decide(status state.Status, isLoading bool, loc Location) Decision
}

// RequireAuth lets only authenticated users through.
type RequireAuth struct {
	RedirectTo string
}

func (g RequireAuth) Decide(status state.Status, isLoading bool, loc Location) Decision {
	if isLoading {
		return Decision{Action: Loading}
	}
	if status != state.Authenticated {
		to := g.RedirectTo
		if to == "" {
			to = common.PathLoginPage
		}
		return Decision{Action: Redirect, To: to, From: loc.Path}
	}
	return Decision{Action: Render}
}

// RequireGuest keeps authenticated users away from the auth pages, sending
// them back to where they came from.
type RequireGuest struct {
	RedirectTo string
}

func (g RequireGuest) Decide(status state.Status, isLoading bool, loc Location) Decision {
	if isLoading {
		return Decision{Action: Loading}
	}
	if status == state.Authenticated {
		to := loc.From
		if to == "" {
			to = g.RedirectTo
		}
		if to == "" {
			to = common.PathHome
		}
		return Decision{Action: Redirect, To: to}
	}
	return Decision{Action: Render}
}

// Public renders unconditionally.
type Public struct{}

func (Public) Decide(state.Status, bool, Location) Decision {
	return Decision{Action: Render}
}
