package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bakeryhq/orderdesk/internal/assistant"
	"github.com/bakeryhq/orderdesk/internal/config"
	"github.com/bakeryhq/orderdesk/internal/handlers"
	"github.com/bakeryhq/orderdesk/internal/repository"
	"github.com/bakeryhq/orderdesk/internal/service"
	"github.com/bakeryhq/orderdesk/internal/sheets"
	"github.com/bakeryhq/orderdesk/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting order desk server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store", cfg.Store.Driver,
		"log_level", cfg.LogLevel,
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	seed, err := repository.LoadSeedFile(cfg.Store.SeedFile)
	if err != nil {
		return err
	}
	kv, err := repository.Open(ctx, repository.Options{
		Driver: cfg.Store.Driver,
		Path:   cfg.Store.Path,
		DSN:    cfg.Store.DSN,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer kv.Close()
	repo := repository.New(kv, seed)

	webhookURL, err := repo.WebhookURL(ctx)
	if err != nil {
		return fmt.Errorf("failed to read webhook url: %w", err)
	}
	if webhookURL == "" {
		webhookURL = cfg.Sheets.WebhookURL
	}

	// Services
	syncer := sheets.NewSyncer(sheets.NewHTTPSender(cfg.Sheets.SyncTimeout), webhookURL, log)

	productService, err := service.NewProductService(ctx, repo)
	if err != nil {
		return err
	}
	clientService, err := service.NewClientService(ctx, repo)
	if err != nil {
		return err
	}
	orderService, err := service.NewOrderService(ctx, repo, productService, clientService, syncer, log)
	if err != nil {
		return err
	}
	productionService := service.NewProductionService(orderService, productService, clientService)
	settingsService := service.NewSettingsService(repo, syncer, orderService, log)

	ai, err := newAssistant(ctx, cfg.Assistant, log)
	if err != nil {
		return err
	}

	// Access gate
	pinHash, err := handlers.HashPIN(cfg.Access.PIN)
	if err != nil {
		return fmt.Errorf("failed to hash access pin: %w", err)
	}
	secret := []byte(cfg.Access.JWTSecret)
	if len(secret) == 0 {
		log.Warn("JWT_SECRET not set, tokens will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate token secret: %w", err)
		}
	}

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         log,
		TokenSecret:    secret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: 60 * time.Second,
		Health:         handlers.NewHealthHandler(log, syncer, ai.Available()),
		Products:       handlers.NewProductHandler(productService, log),
		Clients:        handlers.NewClientHandler(clientService, log),
		Orders:         handlers.NewOrderHandler(orderService, productionService, log),
		Production:     handlers.NewProductionHandler(productionService, log),
		Assistant:      handlers.NewAssistantHandler(ai, productService, productionService, log),
		Sync:           handlers.NewSyncHandler(syncer, orderService, log),
		Settings:       handlers.NewSettingsHandler(settingsService, log),
		Access:         handlers.NewAccessHandler(pinHash, secret, cfg.Access.TokenTTL, log),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return syncer.Run(gctx)
	})

	g.Go(func() error {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	// Push what is on disk once a webhook is known
	if orders, _ := orderService.ListOrders(ctx); webhookURL != "" && len(orders) > 0 {
		if err := orderService.Resync(ctx); err != nil {
			log.Error("startup sync failed", "error", err)
		}
	}

	return g.Wait()
}

func newAssistant(ctx context.Context, cfg config.AssistantConfig, log *slog.Logger) (*assistant.Assistant, error) {
	if cfg.APIKey == "" {
		log.Info("GEMINI_API_KEY not set, assistant disabled")
		return assistant.New(nil, log), nil
	}

	gen, err := assistant.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	log.Info("assistant enabled", "model", gen.Name())
	return assistant.New(gen, log), nil
}
