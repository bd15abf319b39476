package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/sizing-assistant/internal/config"
	"github.com/jonathan/sizing-assistant/internal/server"
	"github.com/jonathan/sizing-assistant/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing conversation sessions, the catalog and the recommendation engine.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	flush := setupSentry(cfg, logger)
	defer flush()

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srvConfig := server.Config{
		Port:      cfg.Port,
		JWT:       jwtConfig,
		RateLimit: ratelimit.LoadConfig(),
	}
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		srvConfig.RateLimitStore = ratelimit.NewRedisStore(client)
		logger.Info("rate limits shared through redis")
	}

	srv, err := server.New(srvConfig, a.bot, a.store, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
