package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dan9191/credit-simulator/internal/config"
	"github.com/Dan9191/credit-simulator/internal/digest"
	"github.com/Dan9191/credit-simulator/internal/handler"
	"github.com/Dan9191/credit-simulator/internal/integrations/cbr"
	"github.com/Dan9191/credit-simulator/internal/middleware"
	"github.com/Dan9191/credit-simulator/internal/repository"
	"github.com/Dan9191/credit-simulator/internal/service"
	"github.com/Dan9191/credit-simulator/internal/storage"
	"github.com/Dan9191/credit-simulator/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	rootCmd := &cobra.Command{
		Use:   "credit-simulator",
		Short: "Bank credit simulator API",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), logger)
		},
	}
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables, seed sample data and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, repo, err := setup(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer repo.Close()
			return seed(cmd.Context(), cfg, repo, logger)
		},
	}
	rootCmd.AddCommand(serveCmd, migrateCmd)
	rootCmd.RunE = serveCmd.RunE

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// setup loads configuration, opens the database and migrates the schema.
func setup(ctx context.Context, logger *logrus.Logger) (*config.Config, *repository.Repository, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	db, err := repository.Open(cfg.DBDriver, cfg.DBConn, cfg.DBLog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := repository.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Infof("Database ready (%s)", cfg.DBDriver)
	return cfg, repo, nil
}

func seed(ctx context.Context, cfg *config.Config, repo *repository.Repository, logger *logrus.Logger) error {
	if !cfg.Seed {
		return nil
	}
	seeded, err := repo.Seed(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	if seeded {
		logger.Info("Inserted sample data")
	}
	return nil
}

func runServe(ctx context.Context, logger *logrus.Logger) error {
	cfg, repo, err := setup(ctx, logger)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := seed(ctx, cfg, repo, logger); err != nil {
		return err
	}

	// Initialize layers
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, service.WithCreditoNotifier(mailer))
	cbrClient := cbr.NewCBRClient(cfg, logger)
	h := handler.NewHandler(svc, storage.NewDocuments(cfg.UploadDir), cbrClient, logger)

	auditDigest := digest.New(repo, mailer, cfg.DigestRecipient, logger)
	if err := auditDigest.Start(cfg.DigestSchedule); err != nil {
		return err
	}
	defer auditDigest.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Recover(logger), middleware.Logging(logger))
	h.Routes(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
