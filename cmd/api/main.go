package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/trogers1052/stock-dashboard/internal/api"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/database"
	"github.com/trogers1052/stock-dashboard/internal/logging"
)

func main() {
	logger := logging.New("stock-dashboard-api")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	logger.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.DBName,
	}).Info("Connected to database")

	handler := api.NewHandler(db, logger)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.SetupRoutes(handler, logger),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", server.Addr).Info("Server is running")
		logger.Infof("Health check: http://localhost:%s/api/health", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Shutting down server...")
	case err := <-serverErr:
		logger.WithError(err).Error("Server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Failed to shut down server gracefully")
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Error("Error closing database")
	} else {
		logger.Info("Database connection closed")
	}
}
