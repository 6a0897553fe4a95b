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

	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/telemetry"
	"github.com/jcmexdev/ecommerce-orders/internal/user-service/adapters/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/user-service/app"
	"github.com/jcmexdev/ecommerce-orders/internal/user-service/domain"
)

const serviceName = "user-service"

func main() {
	telemetry.InitLogger(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", serviceName))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	svc := app.NewService()
	svc.Seed([]domain.User{
		{ID: "u-1001", Name: "Ada Lovelace", Email: "ada@example.com"},
		{ID: "u-1002", Name: "Grace Hopper", Email: "grace@example.com"},
	})

	router := httpx.NewRouter(httpx.NewHandler(svc))

	addr := ":" + getEnv("PORT", "8082")
	srv := &http.Server{
		Addr:              addr,
		Handler:           pkghttpx.WrapWithTracing(router, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("user service running", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
