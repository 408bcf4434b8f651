package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VishardMehta/Smart-Expense-Management/internal/amqp"
	"github.com/VishardMehta/Smart-Expense-Management/internal/auth"
	"github.com/VishardMehta/Smart-Expense-Management/internal/backend"
	"github.com/VishardMehta/Smart-Expense-Management/internal/cli"
	apphttp "github.com/VishardMehta/Smart-Expense-Management/internal/http"
	"github.com/VishardMehta/Smart-Expense-Management/internal/services"
)

func main() {
	cfg, logger := cli.Bootstrap()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Data backend
	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		MockDataPath: cfg.MockDataPath,
		MockLatency:  int(cfg.MockLatency / time.Millisecond),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to create data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// Event publishing is optional; without a broker URL mutations are
	// simply not audited.
	svcOpts := []services.ServiceOption{}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		svcOpts = append(svcOpts, services.WithPublisher(amqpClient))
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	service := services.NewTransactionService(result.Store, svcOpts...)

	provider, err := newAuthProvider(ctx, cfg.AuthProvider)
	if err != nil {
		logger.Error("Failed to initialize auth provider", "error", err, "provider", cfg.AuthProvider)
		os.Exit(1)
	}
	gate := auth.NewGate(provider)

	srv := apphttp.NewServer(":"+cfg.Port, service, gate)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting tracker server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func newAuthProvider(ctx context.Context, kind string) (auth.Provider, error) {
	if kind == "google" {
		return auth.NewGoogleProvider(ctx)
	}
	return auth.NewStubProvider(300 * time.Millisecond), nil
}
