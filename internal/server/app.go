// Package server wires the development account API: configuration, the
// in-memory user store, verification codes and the HTTP server. It also
// handles graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/api"
	"github.com/dmitrijs2005/gophauth/internal/server/codes"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/users"
)

// purgeInterval is how often expired verification sessions are dropped.
const purgeInterval = time.Minute

type App struct {
	config      *config.Config
	logger      logging.Logger
	codes       *codes.Store
	userService *users.Service
	server      *api.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	store := codes.NewStore(c.CodeTTL)
	us := users.NewService(users.NewMemoryRepository(), store, users.NewLogSender(logger), c, logger)

	return &App{
		config:      c,
		logger:      logger,
		codes:       store,
		userService: us,
		server:      api.NewServer(c.Addr, logger, us),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) purgeCodes(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.codes.Purge(); n > 0 {
				app.logger.Debug(ctx, "purged expired verification sessions", "count", n)
			}
		}
	}
}

// Run blocks until the server stops, either on a signal, on cancellation of
// ctx or because it failed to start.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeCodes(ctx)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
