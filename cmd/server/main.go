package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"fashion-assistant/internal/bootstrap"
	"fashion-assistant/internal/config"
	"fashion-assistant/internal/httpclient"
	"fashion-assistant/internal/infrastructure/api"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := bootstrap.New(ctx, cfg, httpClient)
	if err != nil {
		logger.Error("pipeline init failed", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("pipeline close failed", "err", err)
		}
	}()

	handler := api.NewStylingHandler(pipeline.UseCase, pipeline.Parameters, cfg.MaxUploadBytes, cfg.RequestTimeout)

	r := mux.NewRouter()
	r.Use(api.WithLogging(logger))
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Starting server",
		"addr", srv.Addr,
		"project", cfg.ProjectID,
		"location", cfg.Location,
		"captionBackend", cfg.CaptionBackend,
		"imageBackend", cfg.ImageBackend,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
