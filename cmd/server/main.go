package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/KOFI-GYIMAH/handoff-assistant/docs"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/app"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/config"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/handler"
	md "github.com/KOFI-GYIMAH/handoff-assistant/internal/middleware"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/worker"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

// @title Project Handoff Assistant
// @version 1.0.0
// @description Contributor analytics, generated documentation and Confluence publishing for GitHub repositories.
// @host localhost:8000
// @BasePath /
func main() {
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * Wire GitHub, LLM, database, broker and services
	application, err := app.New(ctx, cfg, app.Options{WithQueue: true})
	if err != nil {
		logger.Error("Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer application.Close()

	// * Start the publish worker when a broker is configured
	workerDone := make(chan struct{})
	if application.Queue != nil {
		w := worker.NewPublishWorker(application.Queue, application.Publisher, worker.DefaultJobTimeout)
		go func() {
			w.Run(ctx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	// * Create API server
	apiHandler := handler.NewHandler(
		application.Collaborators,
		application.Documents,
		application.Publisher,
		application.History,
		cfg.Confluence.BaseURL,
	)
	router := mux.NewRouter()
	router.Use(md.LoggingMiddleware)
	apiHandler.RegisterRoutes(router)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           md.Recovery(md.CORS(cfg.AllowedOrigins)(router)),
		ReadHeaderTimeout: 10 * time.Second,
		// * documentation runs wait on the LLM
		WriteTimeout: 10 * time.Minute,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown: %v", err)
	}

	cancel()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logger.Warn("publish worker did not stop in time")
	}
}
