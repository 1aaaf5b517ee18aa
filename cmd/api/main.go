package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	words := crypto.DefaultWordList()
	if cfg.WordListPath != "" {
		words, err = crypto.LoadWordList(cfg.WordListPath)
		if err != nil {
			slog.Error("loading word list failed", "path", cfg.WordListPath, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("word list loaded", "words", len(words), "custom", cfg.WordListPath != "")

	generator := crypto.NewGenerator(crypto.NewCryptoSource(), words)
	genService := service.NewGeneratorService(generator)
	popupService := service.NewPopupService(genService, cfg.PopupSecret, cfg.PopupTTL)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopPruning := make(chan struct{})
	go limiter.Run(stopPruning)

	router := handler.NewRouter(handler.Routes{
		Generator:   handler.NewGeneratorHandler(genService),
		Popup:       handler.NewPopupHandler(popupService),
		PopupSecret: cfg.PopupSecret,
		Limiter:     limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	close(stopPruning)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
