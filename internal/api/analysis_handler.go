package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/ielts-band-estimator/internal/analysis"
	apperrors "github.com/ajharbinger/ielts-band-estimator/internal/errors"
	"github.com/ajharbinger/ielts-band-estimator/internal/logger"
	"github.com/ajharbinger/ielts-band-estimator/internal/middleware"
	"github.com/ajharbinger/ielts-band-estimator/internal/scoring"
)

// EssayAnalyzer produces a report for one essay.
type EssayAnalyzer interface {
	Analyze(ctx context.Context, essay analysis.Essay) (*analysis.Report, error)
}

// CheckerStatus exposes backend availability diagnostics.
type CheckerStatus interface {
	Available() bool
	InitError() error
	JavaAvailable() bool
}

// AnalyzeRequest is the POST /analyze body.
type AnalyzeRequest struct {
	Text     string `json:"text"`
	TaskType string `json:"task_type"`
}

// AnalysisHandler serves essay analysis
type AnalysisHandler struct {
	analyzer EssayAnalyzer
	status   CheckerStatus
	log      logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer EssayAnalyzer, status CheckerStatus, log logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		status:   status,
		log:      log,
	}
}

// Analyze scores the submitted essay
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("analyze handler panicked", nil, "panic", r, "request_id", c.GetString(middleware.RequestIDKey))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":             "Server error: unexpected failure",
				"lt_tool_available": h.status.Available(),
			})
		}
	}()

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	taskType, err := scoring.ParseTaskType(req.TaskType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task_type: " + err.Error()})
		return
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), analysis.Essay{Text: req.Text, TaskType: taskType})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// bindRequest decodes the body; an empty or non-object body is "no data".
func (h *AnalysisHandler) bindRequest(c *gin.Context) (AnalyzeRequest, bool) {
	var req AnalyzeRequest

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body: " + err.Error()})
		return req, false
	}

	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return req, false
	}

	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

func (h *AnalysisHandler) respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.InternalError("Server error", err).WithOperation("analyze")
	}

	switch appErr.Code {
	case apperrors.ErrCodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	case apperrors.ErrCodeCheckerUnavailable:
		h.log.Warn("grammar checker unavailable", "reason", appErr.Reason(), "request_id", c.GetString(middleware.RequestIDKey))
		c.JSON(http.StatusOK, gin.H{
			"error":             appErr.Reason(),
			"lt_tool_available": false,
			"java_available":    h.status.JavaAvailable(),
		})
	case apperrors.ErrCodeInternalError:
		h.log.Error("analyze request failed", err, "request_id", c.GetString(middleware.RequestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             appErr.Reason(),
			"lt_tool_available": h.status.Available(),
		})
	default:
		h.log.Error("analysis failed", err, "request_id", c.GetString(middleware.RequestIDKey))
		c.JSON(http.StatusOK, gin.H{
			"error":             appErr.Reason(),
			"lt_tool_available": false,
			"java_available":    h.status.JavaAvailable(),
		})
	}
}
