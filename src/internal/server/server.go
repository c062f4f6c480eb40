package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/clients"
	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/dependency"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg  *config.Configuration
	deps *dependency.Manager
	http *http.Server
}

func New(cfg *config.Configuration) *Server {
	return &Server{cfg: cfg}
}

// Start connects the backing services, wires the dependency graph and
// serves until the listener fails.
func (s *Server) Start() error {
	mongodb, err := clients.NewMongoDB(&s.cfg.Database)
	if err != nil {
		return err
	}

	redisClient, err := clients.NewRedisClient(&s.cfg.Redis)
	if err != nil {
		return err
	}

	rabbitMQ, err := clients.NewRabbitMQ(&s.cfg.Queue)
	if err != nil {
		return err
	}
	if err := rabbitMQ.SetupExchange(); err != nil {
		return err
	}

	gin.SetMode(s.cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())

	s.deps = dependency.NewDependencyManager(router, mongodb, redisClient, rabbitMQ, s.cfg)
	SetupRoutes(s.deps)

	s.http = &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	log.Infof("Server listening on port %s", s.cfg.Server.Port)
	return s.http.ListenAndServe()
}

// Shutdown stops the listener and closes backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Failed to shut down HTTP server")
			return err
		}
	}
	if s.deps != nil {
		if s.deps.RabbitMQ != nil {
			_ = s.deps.RabbitMQ.Close()
		}
		if s.deps.Redis != nil {
			_ = s.deps.Redis.Close()
		}
		if s.deps.Mongodb != nil {
			_ = s.deps.Mongodb.Close(ctx)
		}
	}
	log.Info("Server stopped")
	return nil
}
