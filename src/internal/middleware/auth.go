package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/cache"
	"sentra-identity-svc/src/internal/models"
	"sentra-identity-svc/src/internal/session"
	"sentra-identity-svc/src/internal/token"
)

type activityPublisher interface {
	PublishActivityWithDetails(userID, sessionID, tenantID, serviceName, action, ipAddress, userAgent string) error
}

// AuthMiddleware handles authentication on inbound requests. It checks
// the Redis cache first and falls back to the full session validation
// path against MongoDB.
type AuthMiddleware struct {
	verifier     token.Verifier
	validator    *session.Validator
	sessionRepo  session.Repository
	cacheService cache.Service
	publisher    activityPublisher
}

func NewAuthMiddleware(verifier token.Verifier, validator *session.Validator, sessionRepo session.Repository, cacheService cache.Service, publisher activityPublisher) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:     verifier,
		validator:    validator,
		sessionRepo:  sessionRepo,
		cacheService: cacheService,
		publisher:    publisher,
	}
}

// RequireAuth validates the bearer credential and its session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := m.extractToken(c)
		if credential == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(credential)
		if err != nil {
			logrus.WithError(err).Debug("Credential verification failed")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		valid, err := m.validateSession(c.Request.Context(), credential, claims)
		if err != nil {
			logrus.WithError(err).Error("Session validation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Session validation error",
			})
			c.Abort()
			return
		}

		if !valid {
			m.publishActivity(c, claims, models.ActionSessionRejected)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired - please login again",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("session_id", claims.SessionID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		m.publishActivity(c, claims, models.ActionSessionValidated)

		logrus.WithFields(logrus.Fields{
			"user_id":    claims.UserID,
			"session_id": claims.SessionID,
			"tenant_id":  claims.TenantID,
		}).Debug("User authenticated successfully")

		c.Next()
	}
}

// RequireAdminRights checks if the authenticated user has admin privileges.
func (m *AuthMiddleware) RequireAdminRights() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleInterface, exists := c.Get("user_role")
		if !exists {
			logrus.Error("User role not found in context - ensure RequireAuth middleware runs first")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		userRole, ok := userRoleInterface.(string)
		if !ok || userRole != "admin" {
			userID, _ := c.Get("user_id")
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"user_role": userRole,
			}).Warn("User attempted to access admin endpoint without admin privileges")

			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access forbidden - admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		logrus.Debug("Invalid authorization header format")
		return ""
	}

	return strings.TrimPrefix(authHeader, "Bearer ")
}

// validateSession checks the cache first and falls back to the full
// validation path. Cache entries that fail any lifecycle or binding check
// are dropped so the next request takes the authoritative path.
func (m *AuthMiddleware) validateSession(ctx context.Context, credential string, claims *token.Claims) (bool, error) {
	cached, err := m.cacheService.GetActiveSession(ctx, claims.UserID, claims.SessionID)
	if err == nil && cached != nil {
		now := time.Now()
		if cached.EffectiveStatus(now) == models.SessionActive && cached.UserID == claims.UserID {
			if err := m.cacheService.UpdateSessionActivity(ctx, claims.UserID, claims.SessionID); err != nil {
				logrus.WithError(err).Debug("Failed to update cached session activity")
			}
			if err := m.sessionRepo.UpdateActivity(ctx, claims.SessionID, now); err != nil {
				logrus.WithError(err).Debug("Failed to update session activity")
			}
			return true, nil
		}
		if err := m.cacheService.InvalidateSession(ctx, claims.UserID, claims.SessionID); err != nil {
			logrus.WithError(err).Debug("Failed to invalidate cached session")
		}
	}

	result, err := m.validator.Validate(ctx, session.ValidateRequest{
		SessionID:  claims.SessionID,
		Credential: credential,
		TenantID:   claims.TenantID,
	})
	if err != nil {
		return false, err
	}
	if !result.IsValid {
		logrus.WithFields(logrus.Fields{
			"session_id": claims.SessionID,
			"reason":     result.Reason,
		}).Warn("Session rejected")
		return false, nil
	}

	sess, err := m.sessionRepo.GetByID(ctx, claims.SessionID, claims.TenantID)
	if err == nil {
		if cacheErr := m.cacheService.CacheActiveSession(ctx, sess); cacheErr != nil {
			logrus.WithError(cacheErr).Debug("Failed to cache session")
		}
	}

	return true, nil
}

func (m *AuthMiddleware) publishActivity(c *gin.Context, claims *token.Claims, action string) {
	if m.publisher == nil {
		return
	}
	err := m.publisher.PublishActivityWithDetails(
		claims.UserID,
		claims.SessionID,
		claims.TenantID,
		models.ServiceAuthMiddleware,
		action,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		logrus.WithError(err).Debug("Failed to publish auth activity")
	}
}
