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

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/adapters/client"
	"github.com/jcmexdev/ecommerce-orders/internal/order-service/adapters/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/order-service/adapters/sqlite"
	"github.com/jcmexdev/ecommerce-orders/internal/order-service/app"
	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/telemetry"
)

const serviceName = "order-service"

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

	repo, err := sqlite.Open(getEnv("ORDER_DB_PATH", "orders.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	users := client.NewUserClient(getEnv("USER_SERVICE_URL", "http://localhost:8082"))
	catalog := client.NewProductClient(getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081"))

	svc := app.NewService(repo, users, catalog)
	router := httpx.NewRouter(httpx.NewHandler(svc))

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           pkghttpx.WrapWithTracing(router, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("order service running", "addr", addr)
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
