package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/router"
)

// maxRenders bounds the page chain of a single command, e.g. a login form
// followed by the home page it navigates to.
const maxRenders = 3

// Render resolves the current location through the guards and runs the page.
// When a form page moves the router elsewhere, the new page is rendered too.
// Only input errors are returned.
func (a *App) Render(ctx context.Context) error {
	for i := 0; i < maxRenders; i++ {
		page, err := a.router.Resolve(a.store.State(), a.store.IsLoading())
		if err != nil {
			a.notifier.Error(err.Error())
			return nil
		}

		before := a.router.Current().Path
		if err := a.renderPage(ctx, page); err != nil {
			return err
		}
		if !isFormPage(page) || a.router.Current().Path == before {
			return nil
		}
	}
	return nil
}

func isFormPage(p router.Page) bool {
	return p == router.PageLogin || p == router.PageRegister || p == router.PageForgot
}

func (a *App) renderPage(ctx context.Context, page router.Page) error {
	switch page {
	case router.PageLoading:
		printlnFn("Loading...")
	case router.PageHome:
		a.homePage()
	case router.PageProfile:
		a.profilePage()
	case router.PageLogin:
		return a.loginPage(ctx)
	case router.PageRegister:
		return a.registerPage(ctx)
	case router.PageForgot:
		return a.forgotPasswordPage(ctx)
	default:
		printlnFn("Page not found:", a.router.Current().Path)
	}
	return nil
}

func (a *App) homePage() {
	printlnFn("== Home ==")
	st := a.store.State()
	if st.IsAuthenticated() {
		name := st.User.DisplayName()
		if name == "" {
			name = "user"
		}
		printlnFn(fmt.Sprintf("Hello, %s", name))
		printlnFn("Commands: profile, logout")
		return
	}
	printlnFn("Please sign in or register to continue")
	printlnFn("Commands: login, register")
}

func (a *App) profilePage() {
	u := a.store.State().User
	if u == nil {
		return
	}
	printlnFn("== Profile ==")
	printlnFn("ID:    " + u.ID)
	if u.Email != "" {
		printlnFn("Email: " + u.Email)
	}
	if u.Phone != "" {
		printlnFn("Phone: " + u.Phone)
	}
}
