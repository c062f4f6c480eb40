package twofactor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sentra-identity-svc/src/internal/models"
)

type Handler interface {
	ValidateCodeFormat(c *gin.Context)
}

type handler struct{}

func NewHandler() Handler {
	return &handler{}
}

// ValidateCodeFormat runs the cheap format gate for a submitted code.
// Format errors are not security-sensitive, so the specific rule violated
// is rendered back to the caller.
func (h *handler) ValidateCodeFormat(c *gin.Context) {
	var req models.TwoFactorCode
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "code is required",
		})
		return
	}

	if err := ValidateFormat(req.Code, req.CodeType); err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			c.JSON(http.StatusOK, gin.H{
				"valid": false,
				"rule":  formatErr.Rule,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Code validation error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}
