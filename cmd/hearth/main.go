package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mvarner/hearth/internal/database"
	"github.com/mvarner/hearth/internal/logging"
	"github.com/mvarner/hearth/internal/server"
	"github.com/mvarner/hearth/internal/weather"
)

func main() {
	// Optional; real deployments set env vars directly.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("HEARTH_LOG_LEVEL"), os.Getenv("HEARTH_LOG_FORMAT"))

	port := os.Getenv("HEARTH_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("HEARTH_DB_PATH")
	if dbPath == "" {
		dbPath = "hearth.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	weatherSvc := weather.NewService(weather.Config{
		APIKey: os.Getenv("HEARTH_WEATHER_API_KEY"),
		Units:  os.Getenv("HEARTH_WEATHER_UNITS"),
	})

	srv, err := server.New(db, weatherSvc, logger)
	if err != nil {
		logger.Error("initialize server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Expire stale rate-limit entries so the map does not grow forever.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupDone:
				return
			}
		}
	}()

	go func() {
		logger.Info("listening", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	close(cleanupDone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
