package dependency

import (
	"github.com/gin-gonic/gin"

	"sentra-identity-svc/src/clients"
	"sentra-identity-svc/src/internal/attempt"
	"sentra-identity-svc/src/internal/cache"
	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/risk"
	"sentra-identity-svc/src/internal/session"
	"sentra-identity-svc/src/internal/token"
	"sentra-identity-svc/src/internal/twofactor"
	"sentra-identity-svc/src/internal/user"
)

type Manager struct {
	Router           *gin.Engine
	Config           *config.Configuration
	Mongodb          *clients.MongoDB
	Redis            *clients.RedisClient
	RabbitMQ         *clients.RabbitMQ
	Publisher        *clients.ActivityPublisher
	CacheService     cache.Service
	TokenVerifier    token.Verifier
	SessionRepo      session.Repository
	AttemptRepo      attempt.Repository
	UserRepo         user.Repository
	Validator        *session.Validator
	Assessor         *risk.Assessor
	Orchestrator     *risk.Orchestrator
	SessionHandler   session.Handler
	RiskHandler      risk.Handler
	TwoFactorHandler twofactor.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {

	cacheService := cache.NewCacheService(redisClient.Client, cfg)
	publisher := clients.NewActivityPublisher(cfg, rabbitMQ.Channel)

	tokenVerifier := token.NewJWTVerifier(cfg.Security.JwtKey)
	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.SessionCollection)
	attemptRepo := attempt.NewAttemptRepository(mongodb, cfg.Database.AttemptCollection)
	userRepo := user.NewUserRepository(mongodb, cfg.Database.UserCollection)

	validator := session.NewValidator(tokenVerifier, sessionRepo, userRepo)
	assessor := risk.NewAssessor(attemptRepo, sessionRepo, userRepo, &cfg.Security.Policy)
	orchestrator := risk.NewOrchestrator(userRepo, assessor, publisher)

	return &Manager{
		Router:           router,
		Config:           cfg,
		Mongodb:          mongodb,
		Redis:            redisClient,
		RabbitMQ:         rabbitMQ,
		Publisher:        publisher,
		CacheService:     cacheService,
		TokenVerifier:    tokenVerifier,
		SessionRepo:      sessionRepo,
		AttemptRepo:      attemptRepo,
		UserRepo:         userRepo,
		Validator:        validator,
		Assessor:         assessor,
		Orchestrator:     orchestrator,
		SessionHandler:   session.NewHandler(cfg, validator),
		RiskHandler:      risk.NewHandler(cfg, assessor, orchestrator),
		TwoFactorHandler: twofactor.NewHandler(),
	}
}
