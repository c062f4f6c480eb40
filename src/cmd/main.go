package main

import (
	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/logger"
	"sentra-identity-svc/src/internal/server"
)

var log = *logrus.StandardLogger()

func main() {
	cfg := config.Load()
	logger.Init(cfg)

	log.Infof("Application %s is starting....", cfg.App.Name)

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		log.WithError(err).Fatalf("Error starting server: %v", err)
	}
}
