package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/psyborgxoxo/SouravPortfolio/internal/analytics"
	"github.com/psyborgxoxo/SouravPortfolio/internal/config"
	"github.com/psyborgxoxo/SouravPortfolio/internal/content"
	"github.com/psyborgxoxo/SouravPortfolio/internal/endpoint"
	"github.com/psyborgxoxo/SouravPortfolio/internal/logging"
)

// app bundles what the routes need.
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	content    *content.Store
	analytics  *analytics.Store
	contact    *endpoint.Handler
	limiter    *endpoint.RateLimiter
	adminToken string
}

func main() {
	cfg, envErr := config.Load()
	gin.SetMode(cfg.GinMode)
	logger := logging.New(cfg.LogLevel, gin.Mode() == gin.DebugMode)
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("no .env file found, using environment variables")
	}

	store, err := analytics.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open analytics database")
	}
	defer store.Close()

	portfolio, err := content.Default()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load portfolio content")
	}

	delivery, err := newDelivery(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("delivery", cfg.Contact.Delivery).Msg("failed to configure contact delivery")
	}

	a := newApp(cfg, logger, portfolio, store, delivery)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go store.RunCleanup(ctx, cfg.Analytics.Retention, 24*time.Hour)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("port", cfg.Port).Str("delivery", cfg.Contact.Delivery).Msg("starting portfolio server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("failed to start")
	}
}

func newApp(cfg *config.Config, logger zerolog.Logger, portfolio *content.Store, store *analytics.Store, delivery endpoint.Delivery) *app {
	a := &app{
		cfg:        cfg,
		logger:     logger,
		content:    portfolio,
		analytics:  store,
		contact:    endpoint.NewHandler(cfg.Contact, delivery, store, logger),
		adminToken: generateAdminToken(),
	}
	if cfg.Contact.RateLimit > 0 {
		a.limiter = endpoint.NewRateLimiter(cfg.Contact.RateLimit, cfg.Contact.RateBurst)
	}
	return a
}

func newDelivery(cfg *config.Config, logger zerolog.Logger) (endpoint.Delivery, error) {
	switch cfg.Contact.Delivery {
	case "", "log":
		return endpoint.NewLogDelivery(logger), nil
	case "smtp":
		d, err := endpoint.NewSMTPDelivery(cfg.SMTP, logger)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, errors.New("unknown contact delivery " + cfg.Contact.Delivery)
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(endpoint.MethodNotAllowed)

	r.Use(gin.Recovery())
	r.Use(logging.Middleware(a.logger))
	r.Use(corsMiddleware(a.cfg.CORSAllow))
	r.Use(a.analytics.Middleware())

	a.setupContentRoutes(r)
	a.contact.Register(r, a.limiter)
	a.setupAdminRoutes(r)
	return r
}
