// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/config"
	"github.com/javajoker/loanpro-backend/internal/i18n"
	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/router"
	"github.com/javajoker/loanpro-backend/internal/services"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/store/kv"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Setup(cfg.Log, cfg.Environment)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Open the snapshot store
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	backend, err := kv.New(startupCtx, cfg)
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.Storage.Driver).Fatal("Failed to initialize storage backend")
	}

	st, err := store.Open(startupCtx, backend)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load snapshot")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close store")
		}
	}()

	deps := router.NewDependencies(cfg, st, services.NewSimulatedGateway(cfg.Payment))
	if err := deps.Auth.SeedAdmin(startupCtx); err != nil {
		logrus.WithError(err).Fatal("Failed to seed admin account")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(cfg, deps)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
