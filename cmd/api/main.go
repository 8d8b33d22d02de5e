package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/ftracker/internal/api"
	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/config"
	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/events"
	persistence "example.com/ftracker/internal/persistence/postgres"
	"example.com/ftracker/internal/publish"
	httptransport "example.com/ftracker/internal/transport/http"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: cfg.LogLevel, TimeFormat: time.Kitchen})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	producer := publish.NewProducer(cfg.KafkaBrokers, map[string]string{
		events.EventTypeSummaryRecorded: cfg.SummaryTopic,
	})
	defer producer.Close()

	service := domain.NewService(
		persistence.NewRepository(pool),
		publish.NewSummaryPublisher(producer),
	)

	mux := http.NewServeMux()
	api.NewHandler(service, cfg.PageSize).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	authenticator := auth.NewAuthenticator(
		auth.NewVerifier(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}),
		"/healthz", "/metrics",
	)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.RequestLogger(slog.Default(), authenticator.Wrap(mux)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("ftracker api listening", "address", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
