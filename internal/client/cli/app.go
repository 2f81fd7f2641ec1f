package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/router"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/dmitrijs2005/gophauth/internal/client/state"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	store       *state.Store
	sessions    session.Store
	authService services.AuthService
	router      *router.Router
	notifier    *Notifier
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the session database and wires the client together. The
// diagnostic log goes to stderr at the configured level.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)

	return newApp(c, db, api, os.Stdin, os.Stdout, logger), nil
}

func newApp(c *config.Config, db *sql.DB, api client.APIClient, in io.Reader, out io.Writer, logger logging.Logger) *App {
	store := state.NewStore()
	sessions := session.NewSQLiteStore(db, logger)
	rt := router.New()

	a := &App{
		config:      c,
		db:          db,
		store:       store,
		sessions:    sessions,
		authService: services.NewAuthService(api, sessions, store, rt, logger),
		router:      rt,
		notifier:    NewNotifier(out),
		logger:      logger.With("module", "cli"),
		reader:      bufio.NewReader(in),
		out:         out,
	}

	store.Subscribe(func(s state.State) {
		a.logger.Debug(context.Background(), "auth state changed", "status", s.Status.String())
	})

	return a
}

// Bootstrap restores a persisted session, if any. Until it returns, guarded
// pages render as loading.
func (a *App) Bootstrap(ctx context.Context) state.State {
	opts := []state.BootstrapOption{state.WithLogger(a.logger)}
	if a.config != nil && a.config.RevalidateOnBootstrap {
		opts = append(opts, state.WithValidator(state.ExpiryValidator))
	}
	return state.Bootstrap(ctx, a.store, a.sessions, opts...)
}

// Run bootstraps the session, shows the current page and then blocks in the
// REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.Bootstrap(ctx)
	a.Root(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.State().IsAuthenticated()
}

func (a *App) Navigate(path string) {
	a.router.Navigate(path)
}
