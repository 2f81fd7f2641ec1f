package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	st := a.store.State()
	if !st.IsAuthenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", st.User.DisplayName())
}

// Status describes the auth state and current location for the status command.
func (a *App) Status() string {
	st := a.store.State()
	loc := a.router.Current()

	s := fmt.Sprintf("status: %s, page: %s", st.Status, loc.Path)
	if st.IsAuthenticated() {
		s += ", user: " + st.User.DisplayName()
	}
	if st.Error != "" {
		s += ", last error: " + st.Error
	}
	return s
}

// Root renders the current page and starts the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophauth CLI (type 'help' for commands)")

	if err := a.Render(ctx); err != nil {
		return
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
