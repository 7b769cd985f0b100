// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the storefront API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lightshop/internal/auth"
	"lightshop/internal/cache"
	"lightshop/internal/config"
	"lightshop/internal/database"
	"lightshop/internal/handlers"
	"lightshop/internal/media"
	"lightshop/internal/middleware"
	"lightshop/internal/models"
	"lightshop/internal/router"
	"lightshop/internal/session"
	"lightshop/internal/slider"
	"lightshop/internal/storage"
	"lightshop/internal/store"
	"lightshop/internal/telegram"
)

// telegramFolder is the media folder that receives photos posted to the bot.
const telegramFolder = "catalog"

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL, waiting for it to come up under docker-compose.
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(connectCtx, cfg.DSN())
	cancelConnect()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the demo catalog (no-op if products already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (response cache + panel sessions).
	valkeyCtx, cancelValkey := context.WithTimeout(context.Background(), 10*time.Second)
	valkeyClient, err := cache.ConnectValkey(valkeyCtx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	cancelValkey()
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	// Drop responses cached by a previous build; their shape may differ.
	responseCache.InvalidateAll(context.Background())

	gate, err := auth.NewGate(cfg.AdminPassword, cfg.AdminToken, cfg.AdminTOTPSecret)
	if err != nil {
		slog.Error("failed to initialize admin gate", "error", err)
		os.Exit(1)
	}
	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set, header authentication disabled")
	}

	// Initialize data stores.
	productStore := store.NewProductStore(db)
	settingStore := store.NewSiteSettingStore(db)
	mediaStore := store.NewMediaStore(db)
	telegramStore := store.NewTelegramStore(db)

	// Connect to S3-compatible object storage (optional; images fall back
	// to data URIs without it).
	var objects media.ObjectStore
	if cfg.HasS3() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, media stored inline as data URIs")
	}
	library := media.NewLibrary(mediaStore, objects)

	// Hero slider rotation.
	rotator := slider.New(slider.DefaultSlides(), slider.DefaultInterval, slider.DefaultTransition)
	rotator.Start()
	defer rotator.Stop()

	// Telegram publishing bot and order notifications (optional).
	var bot handlers.UpdateHandler
	var notifier handlers.OrderNotifier
	if cfg.HasTelegram() {
		sender, err := telegram.NewBotSender(cfg.TelegramBotToken)
		if err != nil {
			slog.Error("failed to initialize telegram bot", "error", err)
			os.Exit(1)
		}
		b := telegram.NewBot(sender, telegramStore, cfg.TelegramAllowedPhone)
		if library.HasStorage() {
			b.Mirror = func(ctx context.Context, name, fileURL string) (string, error) {
				img, err := library.Fetch(ctx, telegramFolder, name, fileURL)
				if err != nil {
					return "", err
				}
				return img.URL, nil
			}
		}
		b.OnProductCreated = func(ctx context.Context, p *models.Product) {
			responseCache.InvalidateProducts(ctx)
		}
		bot = b

		if cfg.TelegramOrderChatID != 0 {
			notifier = telegram.NewNotifier(sender, cfg.TelegramOrderChatID)
		}
		slog.Info("telegram bot enabled", "orders_forwarded", notifier != nil)
	}

	unlockLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer unlockLimiter.Stop()

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Products: handlers.NewProducts(productStore, responseCache),
		Settings: handlers.NewSettings(settingStore, responseCache),
		Auth:     handlers.NewAuth(gate, sessionStore, secureCookies),
		Media:    handlers.NewMedia(library),
		Pages:    handlers.NewPages(productStore, rotator, library, notifier),
		Telegram: handlers.NewTelegram(bot, cfg.TelegramWebhookSecret),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(h, router.Options{
		Sessions:       sessionStore,
		Gate:           gate,
		CORSOrigin:     cfg.CORSOrigin,
		SecureCookies:  secureCookies,
		TrustedProxies: cfg.TrustedProxies,
		UnlockLimiter:  unlockLimiter,
	})

	// WriteTimeout must accommodate media batches uploaded to S3.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
