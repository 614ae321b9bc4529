package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"parcelflow/cmd"
	apihttp "parcelflow/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to release resources", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, agent := range app.Agents() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if runErr := agent.Run(ctx); runErr != nil {
				logger.Error("Agent failed", "component", agent.Address().String(), "error", runErr)
				stop()
			}
		}()
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	startWebServer(ctx, stop, app, configs.HTTPPort, logger)

	jobManager.StopAll()
	wg.Wait()
	logger.Info("Shutdown complete")
}

func getConfigs() cmd.Config {
	// Environment variables win over .env, and the file is optional.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.LookupEnv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

// startWebServer serves the API until ctx is done, then shuts the server down.
func startWebServer(ctx context.Context, stop context.CancelFunc, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := apihttp.NewEcho(app.CreateHTTPServer())
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}
	e.HidePort = true

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		logger.Info("HTTP server listening", "addr", addr)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", startErr)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
