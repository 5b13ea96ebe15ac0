// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/config"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/db"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/db/migrations"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/resetcode"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/routes"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/storage"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/token"
)

// @title Pymes Credit API
// @version 1.0
// @description Registration, authentication and credit applications for small and medium companies.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Environment)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.CreateDatabaseIfNotExists(ctx, log, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Run(ctx, database.DB.DB); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	store, closeStore, err := newResetStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer, closeMailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}
	defer closeMailer()

	objects, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	if objects == nil {
		log.Warn("document storage disabled", slog.String("backend", cfg.Storage.Backend))
	}

	repos := repository.NewManager(database.DB)
	issuer := token.NewIssuer(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.AccessTokenTTL())

	auth, err := services.NewAuthService(repos, issuer, log)
	if err != nil {
		return err
	}

	router := routes.SetupRoutes(routes.Deps{
		DB:       database.DB,
		Config:   cfg,
		Log:      log,
		Auth:     auth,
		Resets:   services.NewPasswordResetService(repos, resetcode.NewManager(store), mailer, log, cfg.ReturnResetCode()),
		Pymes:    services.NewPymeService(repos, log),
		Credits:  services.NewCreditService(repos, objects, log),
		Verifier: issuer,
		Users:    repos.Users(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

func newResetStore(ctx context.Context, cfg *config.Config) (resetcode.Store, func(), error) {
	switch cfg.Reset.Store {
	case "redis":
		rs, err := resetcode.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	case "memory", "":
		return resetcode.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown RESET_CODE_STORE %q", cfg.Reset.Store)
}

func newMailer(cfg *config.Config, log *slog.Logger) (services.EmailSender, func(), error) {
	switch cfg.Mail.Transport {
	case "smtp":
		return &services.SMTPSender{
			Host:   cfg.Mail.SMTPHost,
			Port:   cfg.Mail.SMTPPort,
			User:   cfg.Mail.SMTPUser,
			Pass:   cfg.Mail.SMTPPassword,
			From:   cfg.Mail.SMTPFrom,
			UseTLS: cfg.Mail.SMTPPort == 465,
		}, func() {}, nil
	case "rabbitmq":
		qs, err := services.NewQueueSender(cfg.Mail.RabbitMQURL, cfg.Mail.RabbitMQQueue)
		if err != nil {
			return nil, nil, err
		}
		return qs, qs.Close, nil
	case "log", "":
		return &services.LogSender{Log: log}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.Mail.Transport)
}

// newObjectStore returns nil when uploads are disabled.
func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		s3cfg, err := config.NewS3Config(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("s3 config: %w", err)
		}
		return storage.NewS3Store(s3cfg), nil
	case config.StorageMinio:
		ms, err := storage.NewMinioStore(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		return ms, nil
	case config.StorageNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
}
