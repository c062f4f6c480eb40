package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sentra-identity-svc/src/clients"
	"sentra-identity-svc/src/internal/dependency"
	"sentra-identity-svc/src/internal/middleware"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	setupHealthEndpoint(deps)
	setupPublicRoutes(router, deps)
	setupSecurityRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"session":  "operational",
					"risk":     "operational",
					"security": "operational",
				},
			},
		})
	})
}

func setupPublicRoutes(router *gin.Engine, deps *dependency.Manager) {
	router.GET("/api/v1/status", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"api_version": "v1",
			"status":      "operational",
			"service":     deps.Config.App.Name,
		})
	})

	// Session validation is the service's primary API: callers present a
	// credential, so the endpoint does not sit behind the auth middleware.
	router.POST("/api/v1/sessions/validate",
		setRouteName("validateSession"),
		deps.SessionHandler.ValidateSession)

	// The format gate runs before any real code verification; it is safe
	// to expose without auth.
	router.POST("/api/v1/twofactor/validate-format",
		setRouteName("validateCodeFormat"),
		deps.TwoFactorHandler.ValidateCodeFormat)
}

func setupSecurityRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := middleware.NewAuthMiddleware(
		deps.TokenVerifier,
		deps.Validator,
		deps.SessionRepo,
		deps.CacheService,
		deps.Publisher,
	)

	handler := deps.RiskHandler

	security := router.Group("/api/v1/security")
	{
		security.POST("/check",
			setRouteName("checkLoginSecurity"),
			authMiddleware.RequireAuth(),
			authMiddleware.RequireAdminRights(),
			handler.CheckLoginSecurity)

		security.GET("/users/:id/risk",
			setRouteName("assessUserRisk"),
			authMiddleware.RequireAuth(),
			authMiddleware.RequireAdminRights(),
			handler.AssessUserRisk)
	}
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	return mongodb.Client.Ping(c.Request.Context(), nil) == nil
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	return redisClient.Ping(c.Request.Context()).Err() == nil
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
