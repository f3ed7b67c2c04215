package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"magicmover/cmd"
	httpadapter "magicmover/internal/adapters/in/http"
	"magicmover/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := httpadapter.NewEcho(logger)
	app.CreateHTTPServer().Register(e)
	serveErr := startWebServer(e, configs.HTTPPort)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err = <-serveErr:
		logger.Error("HTTP server stopped", "error", err)
	}

	shutdown(e, app, jobManager, logger)
}

func startWebServer(e *echo.Echo, port string) <-chan error {
	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	return serveErr
}

// shutdown drains HTTP first so no request runs against stopped jobs or
// closed connections.
func shutdown(e *echo.Echo, app *cmd.CompositionRoot, jobManager *jobs.JobManager, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to drain HTTP server", "error", err)
	}
	jobManager.StopAll()
	if err := app.Close(ctx); err != nil {
		logger.Error("Failed to close connections", "error", err)
	}
	logger.Info("Stopped")
}
