// Package router maps client paths to pages and applies the route guards.
package router

import (
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/guard"
	"github.com/dmitrijs2005/gophauth/internal/client/state"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

type Page string

const (
	PageHome     Page = "home"
	PageProfile  Page = "profile"
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageForgot   Page = "forgot-password"
	PageLoading  Page = "loading"
	PageNotFound Page = "not-found"
)

// maxHops bounds guard redirects per Resolve.
const maxHops = 8

var ErrTooManyRedirects = errors.New("too many redirects")

type Route struct {
	Path  string
	Page  Page
	Guard guard.Guard
}

// DefaultRoutes is the client's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: common.PathHome, Page: PageHome, Guard: guard.Public{}},
		{Path: common.PathProfile, Page: PageProfile, Guard: guard.RequireAuth{RedirectTo: common.PathLoginPage}},
		{Path: common.PathLoginPage, Page: PageLogin, Guard: guard.RequireGuest{RedirectTo: common.PathHome}},
		{Path: common.PathRegisterPage, Page: PageRegister, Guard: guard.RequireGuest{RedirectTo: common.PathHome}},
		{Path: common.PathForgotPassPage, Page: PageForgot, Guard: guard.RequireGuest{RedirectTo: common.PathHome}},
	}
}

// Router holds the current location. It is safe for concurrent use.
type Router struct {
	mu     sync.Mutex
	routes map[string]Route
	loc    guard.Location
}

// New builds a router starting at the home page. With no routes the default
// table is used.
func New(routes ...Route) *Router {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	r := &Router{routes: make(map[string]Route, len(routes)), loc: guard.Location{Path: common.PathHome}}
	for _, rt := range routes {
		r.routes[clean(rt.Path)] = rt
	}
	return r
}

func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.loc = guard.Location{Path: clean(path)}
	r.mu.Unlock()
}

// Redirect moves to `to`, remembering `from` for a later return.
func (r *Router) Redirect(to, from string) {
	r.mu.Lock()
	r.loc = guard.Location{Path: clean(to), From: from}
	r.mu.Unlock()
}

func (r *Router) Current() guard.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loc
}

// Resolve applies guards, following redirects, until a page can render.
// While auth is still loading it returns PageLoading without moving.
func (r *Router) Resolve(st state.State, isLoading bool) (Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hop := 0; hop < maxHops; hop++ {
		rt, ok := r.routes[r.loc.Path]
		if !ok {
			return PageNotFound, nil
		}

		g := rt.Guard
		if g == nil {
			g = guard.Public{}
		}

		d := g.Decide(st.Status, isLoading, r.loc)
		switch d.Action {
		case guard.Loading:
			return PageLoading, nil
		case guard.Redirect:
			r.loc = guard.Location{Path: clean(d.To), From: d.From}
		default:
			return rt.Page, nil
		}
	}
	return PageNotFound, ErrTooManyRedirects
}

func clean(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return common.PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
