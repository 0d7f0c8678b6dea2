package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-console/internal/action"
	"admin-console/internal/apiclient"
	"admin-console/internal/backend"
	"admin-console/internal/config"
	"admin-console/internal/database"
	"admin-console/internal/event"
	"admin-console/internal/handler"
	"admin-console/internal/kv"
	"admin-console/internal/render"
	"admin-console/internal/repository"
	"admin-console/internal/router"
	"admin-console/internal/session"
	"admin-console/internal/view"
	"admin-console/internal/websocket"
)

type App struct {
	server       *http.Server
	cancel       context.CancelFunc
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	background, cancel := context.WithCancel(context.Background())
	a := &App{cancel: cancel}

	store, err := a.openStore(background, cfg)
	if err != nil {
		a.cleanup()
		return nil, err
	}
	sessions := session.NewStore(store)

	// A stored override beats API_BASE_URL, which beats the local/production
	// guess from the console's own address.
	override := sessions.APIBaseOverride(background)
	if override == "" {
		override = cfg.APIBaseURL
	}
	baseURL := apiclient.ResolveBaseURL(override, cfg.ConsolePublicURL, cfg.LocalAPIBaseURL, cfg.ProdAPIBaseURL)
	slog.Info("backend resolved", "base_url", baseURL)

	bus := event.NewBus()
	notifier := event.NewNotifier(bus)

	// Calls are bounded by the request context only.
	client := apiclient.New(baseURL, sessions, nil)
	client.OnUnauthorized(func(context.Context) {
		notifier.SessionCleared()
	})
	go client.Ping(background)

	renderer, err := render.New(cfg.TemplateDir)
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	if cfg.TemplateDir != "" {
		go func() {
			if err := renderer.Watch(background); err != nil {
				slog.Warn("template watcher stopped", "dir", cfg.TemplateDir, "error", err)
			}
		}()
	}

	facade := backend.New(client)
	ctrl := view.NewController(facade, sessions, renderer, view.Options{
		PageSize:       cfg.PageSize,
		SearchDebounce: cfg.SearchDebounce,
	})
	ctrl.OnRender(func(page view.Page, body template.HTML) {
		notifier.Rendered(string(page), body)
	})
	a.cleanupFuncs = append(a.cleanupFuncs, ctrl.Close)

	hub := websocket.NewHub(bus, func(page string, text string) {
		if p, ok := view.ParsePage(page); ok {
			ctrl.SetSearch(p, text)
		}
	})
	go hub.Run(background)

	exec := action.NewExecutor(facade)

	appRouter := router.New(cfg, sessions, router.Handlers{
		Auth:   handler.NewAuthHandler(client, facade, sessions, renderer, notifier),
		Pages:  handler.NewPageHandler(ctrl, renderer, notifier),
		Action: handler.NewActionHandler(exec, ctrl, renderer, notifier),
		Forms:  handler.NewFormHandler(exec, ctrl, renderer, notifier),
		Health: handler.NewHealthHandler(client),
	}, hub)

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return a, nil
}

// openStore picks the persistence behind the session store. Tokens and
// profiles are sealed when a secret is configured.
func (a *App) openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	var store kv.Store

	switch cfg.StoreDriver {
	case config.StorePostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, db.Close)

		if err := db.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		store = repository.NewSettingsRepository(db.Pool)
	case config.StoreSQLite:
		settings, err := repository.NewSQLiteSettings(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, func() {
			if err := settings.Close(); err != nil {
				slog.Warn("failed to close sqlite store", "error", err)
			}
		})
		store = settings
	default:
		slog.Warn("sessions are kept in memory and will not survive a restart")
		store = kv.NewMemoryStore()
	}
	slog.Info("session store ready", "driver", cfg.StoreDriver)

	if cfg.SessionSecret == "" {
		return store, nil
	}

	sealed, err := kv.NewSealedStore(store, cfg.SessionSecret, session.KeyToken, session.KeyProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to seal session store: %w", err)
	}
	return sealed, nil
}

func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("console starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-stop:
	case serveErr = <-errCh:
		slog.Error("server failed", "error", serveErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.cleanup()

	if serveErr != nil {
		return fmt.Errorf("server failed: %w", serveErr)
	}
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("console stopped")
	return nil
}

// cleanup stops background work and releases stores in reverse order of
// acquisition.
func (a *App) cleanup() {
	a.cancel()
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	a.cleanupFuncs = nil
}
