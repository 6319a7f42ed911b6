package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/ielts-band-estimator/internal/checker"
)

// CheckerHealth is the checker state reported on /health.
type CheckerHealth interface {
	CheckerStatus
	Backend() string
	Monitor() *checker.HealthMonitor
}

// HealthHandler reports grammar backend availability
type HealthHandler struct {
	checker CheckerHealth
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(c CheckerHealth) *HealthHandler {
	return &HealthHandler{checker: c}
}

// GetHealth returns availability flags and check statistics. It has no side effects.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	var initErr *string
	if err := h.checker.InitError(); err != nil {
		msg := err.Error()
		initErr = &msg
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                 "healthy",
		"backend":                h.checker.Backend(),
		"languagetool_available": h.checker.Available(),
		"languagetool_error":     initErr,
		"java_available":         h.checker.JavaAvailable(),
		"checker_health":         h.checker.Monitor().GetHealthStatus(),
		"timestamp":              time.Now(),
	})
}

// ResetCheckerHealth clears the check statistics
func (h *HealthHandler) ResetCheckerHealth(c *gin.Context) {
	h.checker.Monitor().Reset()

	c.JSON(http.StatusOK, gin.H{
		"message":   "Checker health monitor reset successfully",
		"timestamp": time.Now(),
	})
}
