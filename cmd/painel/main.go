package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gerenciadormu/painel/internal/gateway"
	"github.com/gerenciadormu/painel/internal/logging"
	"github.com/gerenciadormu/painel/internal/server"
	"github.com/gerenciadormu/painel/internal/sheets"
)

func main() {
	// .env is optional; production reads the real environment.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("PAINEL_LOG_LEVEL"))

	port := os.Getenv("PAINEL_PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("PAINEL_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", port)
	}

	ctx := context.Background()

	rows, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_ID"),
		CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
	})
	if err != nil {
		slog.Error("failed to open spreadsheet client", "error", err)
		os.Exit(1)
	}

	gw, err := gateway.New(gateway.Config{
		AccessToken: os.Getenv("MP_ACCESS_TOKEN"),
		BaseURL:     baseURL,
	})
	if err != nil {
		slog.Error("failed to configure payment gateway", "error", err)
		os.Exit(1)
	}

	srv := server.New(rows, gw, server.Config{
		BaseURL:       baseURL,
		WebhookSecret: os.Getenv("MP_WEBHOOK_SECRET"),
	}, logger)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Background cleanup goroutine
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	go func() {
		slog.Info("painel starting", "addr", ":"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cleanupCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
