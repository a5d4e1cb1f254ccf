package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/yourorg/receipt/apps/api/internal/auth"
	"github.com/yourorg/receipt/apps/api/internal/receipt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := receipt.LoadConfig()
	logger := slog.Default()

	generator := receipt.NewGenerator(cfg, logger)
	if generator.DegradedFont() {
		logger.Warn("running with degraded font rendering; set RECEIPT_FONT_PATH to a Japanese TTF")
	}
	svc := receipt.NewService(cfg, generator, logger)

	authCfg := auth.LoadConfig()
	keys := auth.NewInMemoryKeyStore(authCfg)
	if err := keys.SeedFromConfig(); err != nil {
		logger.Error("loading API keys failed", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(keys, authCfg, logger))
		r.Post("/receipts", svc.CreateReceipt)
		r.Post("/receipts/preview", svc.PreviewReceipt)
	})

	logger.Info("receipt api listening", "addr", cfg.ListenAddr, "template", cfg.TemplatePath)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
