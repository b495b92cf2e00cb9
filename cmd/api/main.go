// @title          Auth Service API
// @version        1.0
// @description    User registration and session authentication.
// @BasePath       /
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

	"github.com/portal/auth-service/internal/api"
	"github.com/portal/auth-service/internal/api/handler"
	"github.com/portal/auth-service/internal/api/session"
	"github.com/portal/auth-service/internal/core/ports"
	"github.com/portal/auth-service/internal/infrastructure/db/mongo"
	"github.com/portal/auth-service/internal/infrastructure/db/redis"
	"github.com/portal/auth-service/internal/infrastructure/mail"
	"github.com/portal/auth-service/internal/infrastructure/security"
	"github.com/portal/auth-service/internal/pkg/config"
	"github.com/portal/auth-service/pkg/logger"
)

const (
	serviceName     = "auth-service"
	shutdownTimeout = 10 * time.Second
)

func main() {
	envErr := godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: serviceName})
		log := logger.Get()
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})
	log := logger.Get()
	if envErr != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Credential store ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(mongoClient); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Session store ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	sessionStore := redis.NewSessionStore(rdb)
	binder, err := session.NewBinder(sessionStore, session.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	})
	if err != nil {
		return err
	}

	// --- Security ---
	tokens, err := security.NewTokenService(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.TTL)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Log:      log,
		Users:    users,
		Hasher:   security.NewBcryptHasher(),
		Tokens:   tokens,
		Sessions: binder,
		Notifier: newNotifier(cfg.Mail),
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error {
				return mongoClient.Ping(ctx, nil)
			}),
			"redis": sessionStore,
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutCtx)
}

func newNotifier(cfg config.MailConfig) ports.Notifier {
	log := logger.Get()
	if !cfg.Enabled() {
		log.Warn().Msg("GMAIL_USERNAME not set, verification mail disabled")
		return mail.NewLogNotifier(log)
	}
	return mail.NewSMTPNotifier(mail.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		Timeout:  cfg.Timeout,
	})
}
