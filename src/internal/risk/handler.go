package risk

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/models"
)

type Handler interface {
	CheckLoginSecurity(c *gin.Context)
	AssessUserRisk(c *gin.Context)
}

type handler struct {
	config       *config.Configuration
	assessor     *Assessor
	orchestrator *Orchestrator
}

func NewHandler(cfg *config.Configuration, assessor *Assessor, orchestrator *Orchestrator) Handler {
	return &handler{
		config:       cfg,
		assessor:     assessor,
		orchestrator: orchestrator,
	}
}

type checkSecurityRequest struct {
	Email     string `json:"email" binding:"required"`
	TenantID  string `json:"tenantId" binding:"required"`
	IPAddress string `json:"ipAddress"`
}

// CheckLoginSecurity returns the composed security verdict for an account.
func (h *handler) CheckLoginSecurity(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req checkSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email and tenantId are required",
		})
		return
	}

	verdict, err := h.orchestrator.CheckLoginSecurity(ctx, req.Email, req.TenantID, req.IPAddress)
	if err != nil {
		h.renderError(c, err, "Login security check failed")
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// AssessUserRisk returns the full risk assessment for a user.
func (h *handler) AssessUserRisk(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	userID := c.Param("id")
	tenantID := c.Query("tenantId")

	assessment, err := h.assessor.Assess(ctx, userID, tenantID)
	if err != nil {
		h.renderError(c, err, "Risk assessment failed")
		return
	}

	c.JSON(http.StatusOK, assessment)
}

func (h *handler) renderError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, models.ErrTenantRequired), errors.Is(err, models.ErrTenantInvalid), errors.Is(err, models.ErrEmailInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
