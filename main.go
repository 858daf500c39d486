package main

import (
	"errors"
	"log"
	"net/http"

	"tracker/src/api"
	"tracker/src/config"
	"tracker/src/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Secrets (JWT_SECRET, DATABASE_URL) come from the environment
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	logger := utils.NewLogger(cfg.Service.LogLevel)

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(server, cfg)

	go func() {
		logger.WithField("port", httpServer.Addr).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("An error raised while setting up server")
			errC <- err
		}
	}()
	return errC, nil
}
