package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/ielts-band-estimator/internal/analysis"
	"github.com/ajharbinger/ielts-band-estimator/internal/checker"
	"github.com/ajharbinger/ielts-band-estimator/internal/logger"
)

// SetupRoutes configures all API routes. Endpoints are served both at the
// root and under /api/v1.
func SetupRoutes(r *gin.Engine, handle *checker.Handle, log logger.Logger) {
	analyzer := analysis.NewAnalyzer(handle, handle.JavaAvailable(), log)

	analysisHandler := NewAnalysisHandler(analyzer, handle, log)
	healthHandler := NewHealthHandler(handle)

	register := func(g *gin.RouterGroup) {
		g.POST("/analyze", analysisHandler.Analyze)
		g.GET("/health", healthHandler.GetHealth)
		g.POST("/health/checker/reset", healthHandler.ResetCheckerHealth)
	}

	register(&r.RouterGroup)
	register(r.Group("/api/v1"))
}
