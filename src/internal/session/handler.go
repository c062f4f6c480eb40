package session

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/config"
)

type Handler interface {
	ValidateSession(c *gin.Context)
}

type handler struct {
	config    *config.Configuration
	validator *Validator
}

func NewHandler(cfg *config.Configuration, validator *Validator) Handler {
	return &handler{
		config:    cfg,
		validator: validator,
	}
}

type validateSessionRequest struct {
	SessionID             string `json:"sessionId" binding:"required"`
	Credential            string `json:"credential" binding:"required"`
	TenantID              string `json:"tenantId"`
	UserID                string `json:"userId"`
	IncludeUserInfo       bool   `json:"includeUserInfo"`
	IncludeSessionDetails bool   `json:"includeSessionDetails"`
}

// ValidateSession validates a bearer credential against its session
// record. Rejections are returned as a normal 200 payload; the internal
// reason stays in the logs, not in the response body.
func (h *handler) ValidateSession(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req validateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "sessionId and credential are required",
		})
		return
	}

	result, err := h.validator.Validate(ctx, ValidateRequest{
		SessionID:             req.SessionID,
		Credential:            req.Credential,
		TenantID:              req.TenantID,
		UserID:                req.UserID,
		IncludeUserInfo:       req.IncludeUserInfo,
		IncludeSessionDetails: req.IncludeSessionDetails,
	})
	if err != nil {
		logrus.WithError(err).Error("Session validation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session validation error",
		})
		return
	}

	if !result.IsValid {
		logrus.WithFields(logrus.Fields{
			"session_id": req.SessionID,
			"reason":     result.Reason,
		}).Info("Session validation rejected")

		// The caller gets the flags it needs to render UX, never the
		// specific rejection reason.
		c.JSON(http.StatusOK, gin.H{
			"isValid":        false,
			"requiresReauth": result.RequiresReauth,
			"sessionExpired": result.SessionExpired,
			"message":        "Please sign in again",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
