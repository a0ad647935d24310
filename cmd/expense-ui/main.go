package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/config"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway/memory"
	apphttp "github.com/shobhitrastogi/expense-tracker-frontend/internal/http"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/state"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentApp})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	var gw gateway.Gateway
	switch cfg.DataBackend {
	case config.BackendMemory:
		store := memory.New(core.User{
			ID:    "1",
			Name:  "Local User",
			Email: "local@example.com",
		})
		store.Seed(sampleExpenses()...)
		gw = store
		logger.Info("initialized in-memory backend", log.FieldBackend, cfg.DataBackend)
	default:
		gw = gateway.NewClient(cfg.APIBaseURL, cfg.APITimeout)
		logger.Info("initialized api backend",
			log.FieldBackend, cfg.DataBackend,
			"base_url", cfg.APIBaseURL)
	}

	// Bootstrap the session from the profile endpoint. A failure keeps the
	// server running; the profile page reports it.
	session := state.Session{Token: sessionToken(cfg)}
	profileErr := ""
	bootCtx, bootCancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	user, err := gw.ReadProfile(bootCtx, session.Token)
	bootCancel()
	if err != nil {
		profileErr = gateway.ErrorMessage(err, "Failed to fetch profile")
		logger.Warn("profile bootstrap failed", log.FieldError, err)
	} else {
		session.User = user
	}

	components := apphttp.Components{
		Session:    session,
		Form:       state.NewFormReconciler(session, gw, logger),
		List:       state.NewListSynchronizer(session, gw, gw, initialFilter(cfg), logger),
		Summary:    state.NewSummaryAggregator(session, gw, logger),
		Detail:     state.NewDetailViewer(session, gw, logger),
		ProfileErr: profileErr,
	}

	srv, err := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + cfg.Port,
		ChartCacheTTL:      cfg.ChartCacheTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, components, logger)
	if err != nil {
		logger.Error("server setup failed", log.FieldError, err)
		os.Exit(1)
	}

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting expense-ui server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}

func sessionToken(cfg *config.Config) string {
	if cfg.DataBackend == config.BackendMemory && cfg.APIToken == "" {
		return "local"
	}
	return cfg.APIToken
}

func initialFilter(cfg *config.Config) core.FilterState {
	filter := core.DefaultFilter()
	filter.Limit = cfg.ListLimit
	return filter
}

func sampleExpenses() []core.Expense {
	today := time.Now().Format("2006-01-02")
	return []core.Expense{
		{Title: "Groceries", Amount: 54.20, Category: "Food", Date: today},
		{Title: "Bus pass", Amount: 30, Category: "Transport", Date: today},
		{Title: "Streaming", Amount: 9.99, Category: "Entertainment", Date: today},
	}
}
