package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/shokyuu/internal/account"
	"github.com/at-ishikawa/shokyuu/internal/bootstrap"
	"github.com/at-ishikawa/shokyuu/internal/config"
	"github.com/at-ishikawa/shokyuu/internal/database"
	"github.com/at-ishikawa/shokyuu/internal/logging"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/reviewrpc"
	"github.com/at-ishikawa/shokyuu/internal/server"
	"github.com/at-ishikawa/shokyuu/schemas"
)

// localJWTSecret signs tokens on development machines without SHOKYUU_JWT_SECRET.
const localJWTSecret = "shokyuu-local-development-secret"

var version = "dev"

var (
	configFile string
	envFile    string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "shokyuu-server",
		Short:         "Serve the account API and the remote review ledger",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", os.Getenv("SHOKYUU_CONFIG"), "config file path")
	rootCommand.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables to load")

	rootCommand.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := openDatabase(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			return db.Close()
		},
	})
	return rootCommand
}

func loadConfigAndLogger() (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("godotenv.Load(%s) > %w", envFile, err)
	}
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loader.Load() > %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("logging.New() > %w", err)
	}
	return cfg, logger, nil
}

// openDatabase connects to MySQL, waiting for it to come up, and applies pending migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.WaitForConnection(ctx, db, cfg.ConnectAttempts); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.WaitForConnection() > %w", err)
	}
	applied, err := database.Migrate(ctx, db, schemas.Migrations)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	logger.Info("database ready",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Strings("migrations", applied),
	)
	return db, nil
}

func jwtSecret(cfg config.ServerConfig, logger *zap.Logger) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	if !cfg.IsLocal() {
		return "", fmt.Errorf("SHOKYUU_JWT_SECRET environment variable is required in %s", cfg.Environment)
	}
	logger.Warn("SHOKYUU_JWT_SECRET is not set, using the local development secret")
	return localJWTSecret, nil
}

// newHandler wires the account API and the review ledger service on top of db.
func newHandler(db *sqlx.DB, cfg config.ServerConfig, logger *zap.Logger) (http.Handler, error) {
	secret, err := jwtSecret(cfg, logger)
	if err != nil {
		return nil, err
	}
	accounts := account.NewService(account.NewDBRepository(db), secret,
		account.WithTokenTTL(time.Duration(cfg.TokenTTLHours)*time.Hour),
	)

	srv := server.New(accounts, cfg, version, logger)
	mux := http.NewServeMux()
	srv.Register(mux)

	reviewHandler := server.NewReviewHandler(accounts, func(userID string) review.Store {
		return review.NewSQLStore(db, userID)
	}, logger)
	path, handler := reviewrpc.NewReviewServiceHandler(reviewHandler)
	srv.MountConnect(mux, path, handler)

	return srv.Handler(h2c.NewHandler(mux, &http2.Server{})), nil
}

func serve(ctx context.Context) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := bootstrap.New(bootstrap.WithLogger(logger))
	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	handler, err := newHandler(db, cfg.Server, logger)
	if err != nil {
		_ = db.Close()
		return err
	}
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(httpServer.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server",
			zap.String("addr", httpServer.Addr),
			zap.String("basePath", cfg.Server.BasePath),
			zap.String("environment", cfg.Server.Environment),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}
