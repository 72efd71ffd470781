package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"galaxy/internal/ai"
	"galaxy/internal/config"
	"galaxy/internal/core"
	apphttp "galaxy/internal/http"
	applog "galaxy/internal/log"
	"galaxy/internal/services"
	"galaxy/internal/storage"
	"galaxy/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.New(slog.LevelInfo, applog.ComponentApp)
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, repo, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if repo != nil {
		defer repo.Close()
	}

	var client ai.Client
	if cfg.AIEnabled() {
		client, err = ai.NewClient(ai.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.AITimeout,
		})
		if err != nil {
			logger.Error("Failed to initialize text-generation client", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Text generation enabled", "model", cfg.GeminiModel)
	} else {
		logger.Info("Text generation disabled, no API key configured")
	}

	// The Persister interface value must stay nil when no repository
	// exists, so the conversion happens only on the sqlite path.
	var persister services.Persister
	if repo != nil {
		persister = repo
	}
	tracker := services.NewTracker(st, persister, client, cfg.SuggestDebounce)

	srv := apphttp.NewServer(":"+cfg.Port, tracker, logger, apphttp.Options{
		RateLimitRPM:    cfg.RateLimitRPM,
		InsightCacheTTL: cfg.InsightCacheTTL,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 15 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// snapshotLoader is the restore side of storage.Repository.
type snapshotLoader interface {
	Load(ctx context.Context) (storage.Snapshot, error)
}

// buildStore initializes the in-memory store, restoring from SQLite
// when that backend is selected. The repository is nil on the memory
// backend.
func buildStore(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*store.Store, *storage.Repository, error) {
	seed := storage.Snapshot{
		Expenses:   store.SeedExpenses(time.Now()),
		Categories: store.DefaultCategories(),
		Budget:     core.DefaultBudget,
	}

	if cfg.DataBackend != "sqlite" {
		logger.Info("Initialized memory backend with demo data")
		return store.New(seed.Expenses, seed.Categories, seed.Budget), nil, nil
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.SeedIfEmpty(ctx, seed); err != nil {
		logger.Warn("Failed to seed snapshot database", applog.FieldError, err)
	}

	logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	return restoreStore(ctx, repo, seed, logger), repo, nil
}

// restoreStore builds the record store from the persisted snapshot. A
// load failure falls back to the seed data so a corrupt snapshot never
// prevents startup; the repository stays open for future writes.
func restoreStore(ctx context.Context, loader snapshotLoader, seed storage.Snapshot, logger *applog.Logger) *store.Store {
	snap, err := loader.Load(ctx)
	if err != nil {
		logger.Warn("Snapshot load failed, starting from seed data", applog.FieldError, err)
		return store.New(seed.Expenses, seed.Categories, seed.Budget)
	}
	logger.Info("Restored snapshot",
		"expenses", len(snap.Expenses), "categories", len(snap.Categories))
	return store.New(snap.Expenses, snap.Categories, snap.Budget)
}
