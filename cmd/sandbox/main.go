package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/config"
	"github.com/ray-remotestate/padipos/sandbox/database"
	"github.com/ray-remotestate/padipos/sandbox/handlers"
	"github.com/ray-remotestate/padipos/sandbox/server"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	cfg, err := config.LoadSandbox()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("failed to set up logging: %v", err)
	}

	seed, err := database.LoadSeed(cfg.SeedFile)
	if err != nil {
		logrus.Panicf("failed to load seed data, error: %v", err)
	}
	db := database.New()
	if err := db.Apply(seed); err != nil {
		logrus.Panicf("failed to apply seed data, error: %v", err)
	}
	logrus.Printf("seeded %d users and %d products", len(seed.Users), len(seed.Products))

	srv := server.SetupRoutes(handlers.New(db, []byte(cfg.SecretKey), cfg.TaxPercent), server.Options{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("sandbox listening on %s", cfg.Addr)
		if err := srv.Run(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Panicf("failed to run server with error: %v", err)
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := srv.Shutdown(shutdownTimeOut); err != nil {
		logrus.WithError(err).Error("failed to gracefully shutdown server")
	}
	logrus.Info("sandbox is shut ..zzz")
}
