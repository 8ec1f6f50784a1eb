package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"station-request-api-server/config"
	"station-request-api-server/internal/api/routes"
	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/database"
	"station-request-api-server/internal/logger"
	"station-request-api-server/internal/metrics"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/repository/memory"
	mongostore "station-request-api-server/internal/repository/mongo"
	"station-request-api-server/internal/s3"
	"station-request-api-server/internal/session"
	"station-request-api-server/internal/socket"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigDir string
}

// NewRootCommand creates the station server CLI. Without a subcommand it
// serves the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "station-api",
		Short:        "Warehouse station request API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", "./config", "directory holding config.yaml")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	return cmd
}

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed empty mongo collections with the station reference data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(opts)
			if err != nil {
				return err
			}
			if cfg.Mongo.URI == "" {
				return fmt.Errorf("%w: mongo.uri is required to seed", config.ErrInvalidConfig)
			}
			ctx := cmd.Context()
			client, db, err := database.Connect(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()
			return database.Seed(ctx, db, time.Now(), log)
		},
	}
}

func load(opts *RootOptions) (config.Config, *slog.Logger, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(opts.ConfigDir)
	if err != nil {
		return cfg, nil, fmt.Errorf("could not load config: %w", err)
	}
	return cfg, logger.New(cfg.Server.Env), nil
}

// openSource returns the configured backend and a cleanup func.
func openSource(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Source, func(), error) {
	if cfg.Storage.Driver != config.DriverMongo {
		log.Info("using in-memory backend")
		return memory.New(), func() {}, nil
	}

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = client.Disconnect(context.Background()) }
	if err := database.Seed(ctx, db, time.Now(), log); err != nil {
		cleanup()
		return nil, nil, err
	}
	log.Info("using mongo backend", "db", cfg.Mongo.DBName)
	return mongostore.New(db), cleanup, nil
}

func serve(parent context.Context, opts *RootOptions) error {
	cfg, log, err := load(opts)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := openSource(ctx, cfg, log)
	if err != nil {
		log.Error("backend init failed", "err", err)
		return err
	}
	defer cleanup()

	accounts, err := session.DefaultAccounts(bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to provision station accounts: %w", err)
	}
	ttl, _ := cfg.TokenTTL()
	shutdownTimeout, _ := cfg.ShutdownTimeout()

	archiver, err := s3.NewArchiver(ctx, cfg.S3)
	if err != nil {
		log.Warn("receipt archiving disabled", "err", err)
	}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	router := routes.SetupRouter(routes.Deps{
		Cfg:      cfg,
		Station:  session.NewStation(accounts),
		Source:   source,
		Tokens:   auth.NewTokenManager(string(cfg.JWTSecret()), ttl),
		Hub:      socket.NewHub(log),
		Archiver: archiver,
		Metrics:  m,
		Log:      log,
		Now:      time.Now,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("HTTP server started", "addr", srv.Addr, "env", cfg.Server.Env, "storage", cfg.Storage.Driver)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("http server error", "err", err)
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return err
	}
	log.Info("graceful shutdown complete")
	return nil
}
