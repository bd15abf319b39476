package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/jonathan/sizing-assistant/internal/avatar"
	"github.com/jonathan/sizing-assistant/internal/catalog"
	"github.com/jonathan/sizing-assistant/internal/chatbot"
	"github.com/jonathan/sizing-assistant/internal/composer"
	"github.com/jonathan/sizing-assistant/internal/config"
	"github.com/jonathan/sizing-assistant/internal/db"
	"github.com/jonathan/sizing-assistant/internal/llm"
	"github.com/jonathan/sizing-assistant/internal/observability"
	"github.com/jonathan/sizing-assistant/internal/session"
)

// loadSettings resolves the config file, environment and --data flag.
func loadSettings() (config.Config, error) {
	cfg, err := config.Resolve(configPath, config.WithDataDir(dataDir))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.With("env", cfg.Environment), nil
}

// setupSentry enables error reporting when a DSN is configured. The returned func flushes
// pending events.
func setupSentry(cfg config.Config, logger *slog.Logger) func() {
	if cfg.SentryDSN == "" {
		return func() {}
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "sizing-assistant@1.0.0",
		TracesSampleRate: 0.2,
	})
	if err != nil {
		logger.Warn("sentry disabled", "error", err)
		return func() {}
	}
	return func() { sentry.Flush(2 * time.Second) }
}

func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Store, error) {
	store, err := catalog.Load(ctx, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.DataDir, err)
	}
	return store, nil
}

// app is the fully wired assistant plus the resources it owns.
type app struct {
	bot      *chatbot.Bot
	store    *catalog.Store
	logger   *slog.Logger
	closers  []func()
	llmReady bool
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp loads the catalog and wires the chatbot. The language model and the turn log
// are optional: without an API key replies come from templates, and without a database
// URL turns are not persisted.
func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	store, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &app{store: store, logger: logger}

	var client llm.Client
	if cfg.APIKey != "" {
		llmConfig := llm.DefaultConfig()
		if cfg.Model != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
		}
		client, err = llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.llmReady = true
	} else {
		logger.Warn("GEMINI_API_KEY not set, replies will use templates")
	}

	avatars, err := avatar.NewService(store, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create avatar service: %w", err)
	}

	opts := chatbot.Options{
		Catalog:  store,
		Composer: composer.New(client, cfg.ComposerTimeout(), logger),
		Sessions: session.NewManager(cfg.MaxTurns),
		Avatars:  avatars,
		Logger:   logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		if err := database.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, err
		}
		opts.Recorder = database
	}

	a.bot = chatbot.New(opts)
	logger.Info("assistant ready",
		"clients", len(store.AllClients()),
		"products", len(store.AllProducts()),
		"llm", a.llmReady,
		"turn_log", cfg.DatabaseURL != "")
	return a, nil
}
