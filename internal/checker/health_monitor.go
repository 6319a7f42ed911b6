package checker

import (
	"strings"
	"sync"
	"time"
)

// HealthMonitor tracks grammar check outcomes and failure rates
type HealthMonitor struct {
	mu                   sync.RWMutex
	totalChecks          int64
	successfulChecks     int64
	failedChecks         int64
	consecutiveFailures  int64
	totalLatency         time.Duration
	lastFailureTime      time.Time
	lastSuccessTime      time.Time
	recentFailures       []FailureRecord
	maxRecentFailures    int
	failureThreshold     float64 // fraction of failed checks considered unhealthy
	consecutiveThreshold int64
}

// FailureRecord represents a single failed check
type FailureRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Error     string    `json:"error"`
}

// HealthStatus is a snapshot of checker health
type HealthStatus struct {
	IsHealthy           bool            `json:"is_healthy"`
	TotalChecks         int64           `json:"total_checks"`
	SuccessfulChecks    int64           `json:"successful_checks"`
	FailedChecks        int64           `json:"failed_checks"`
	SuccessRate         float64         `json:"success_rate"`
	AvgLatencyMillis    int64           `json:"avg_latency_ms"`
	ConsecutiveFailures int64           `json:"consecutive_failures"`
	LastFailureTime     *time.Time      `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time      `json:"last_success_time,omitempty"`
	RecentFailures      []FailureRecord `json:"recent_failures"`
	HealthIssues        []string        `json:"health_issues"`
	RecommendedActions  []string        `json:"recommended_actions"`
}

// NewHealthMonitor creates a new health monitor
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		maxRecentFailures:    20,
		failureThreshold:     0.2,
		consecutiveThreshold: 5,
		recentFailures:       make([]FailureRecord, 0, 20),
	}
}

// RecordSuccess records a successful check and how long it took
func (h *HealthMonitor) RecordSuccess(latency time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalChecks++
	h.successfulChecks++
	h.consecutiveFailures = 0
	h.totalLatency += latency
	h.lastSuccessTime = time.Now()
}

// RecordFailure records a failed check
func (h *HealthMonitor) RecordFailure(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalChecks++
	h.failedChecks++
	h.consecutiveFailures++
	h.lastFailureTime = time.Now()

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	h.recentFailures = append(h.recentFailures, FailureRecord{
		Timestamp: h.lastFailureTime,
		Category:  categorizeError(msg),
		Error:     msg,
	})
	if len(h.recentFailures) > h.maxRecentFailures {
		h.recentFailures = h.recentFailures[1:]
	}
}

// GetHealthStatus returns the current health status
func (h *HealthMonitor) GetHealthStatus() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := HealthStatus{
		IsHealthy:           true,
		TotalChecks:         h.totalChecks,
		SuccessfulChecks:    h.successfulChecks,
		FailedChecks:        h.failedChecks,
		ConsecutiveFailures: h.consecutiveFailures,
		RecentFailures:      make([]FailureRecord, len(h.recentFailures)),
		HealthIssues:        []string{},
		RecommendedActions:  []string{},
	}
	copy(status.RecentFailures, h.recentFailures)

	if h.totalChecks > 0 {
		status.SuccessRate = float64(h.successfulChecks) / float64(h.totalChecks)
	} else {
		status.SuccessRate = 1.0
	}
	if h.successfulChecks > 0 {
		status.AvgLatencyMillis = (h.totalLatency / time.Duration(h.successfulChecks)).Milliseconds()
	}

	if !h.lastFailureTime.IsZero() {
		t := h.lastFailureTime
		status.LastFailureTime = &t
	}
	if !h.lastSuccessTime.IsZero() {
		t := h.lastSuccessTime
		status.LastSuccessTime = &t
	}

	if h.totalChecks >= 10 && status.SuccessRate < (1.0-h.failureThreshold) {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "High failure rate detected (>20%)")
		status.RecommendedActions = append(status.RecommendedActions, "Check LanguageTool connectivity and quota")
	}

	if h.consecutiveFailures >= h.consecutiveThreshold {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "Multiple consecutive failures detected")
		status.RecommendedActions = append(status.RecommendedActions, "Verify the LanguageTool endpoint is reachable")
	}

	h.analyzeFailurePatterns(&status)

	return status
}

// analyzeFailurePatterns flags a dominant failure category among recent failures
func (h *HealthMonitor) analyzeFailurePatterns(status *HealthStatus) {
	if len(h.recentFailures) < 3 {
		return
	}

	counts := make(map[string]int)
	for _, f := range h.recentFailures {
		counts[f.Category]++
	}

	total := len(h.recentFailures)
	for _, category := range []string{"timeout", "rate_limit", "authentication", "network"} {
		if float64(counts[category])/float64(total) <= 0.5 {
			continue
		}
		switch category {
		case "timeout":
			status.HealthIssues = append(status.HealthIssues, "Frequent timeout errors detected")
			status.RecommendedActions = append(status.RecommendedActions, "Increase CHECKER_TIMEOUT or submit shorter texts")
		case "rate_limit":
			status.HealthIssues = append(status.HealthIssues, "Rate limiting detected")
			status.RecommendedActions = append(status.RecommendedActions, "Configure LanguageTool credentials or run a local server")
		case "authentication":
			status.HealthIssues = append(status.HealthIssues, "Authentication errors detected")
			status.RecommendedActions = append(status.RecommendedActions, "Verify LANGUAGETOOL_USERNAME and LANGUAGETOOL_API_KEY")
		case "network":
			status.HealthIssues = append(status.HealthIssues, "Network connectivity issues detected")
			status.RecommendedActions = append(status.RecommendedActions, "Check network connectivity and DNS resolution")
		}
	}
}

// categorizeError categorizes an error message into a type
func categorizeError(errorMsg string) string {
	errorMsg = strings.ToLower(errorMsg)

	switch {
	case strings.Contains(errorMsg, "timeout") || strings.Contains(errorMsg, "deadline"):
		return "timeout"
	case strings.Contains(errorMsg, "rate limit") || strings.Contains(errorMsg, "429"):
		return "rate_limit"
	case strings.Contains(errorMsg, "unauthorized") || strings.Contains(errorMsg, "401") || strings.Contains(errorMsg, "403"):
		return "authentication"
	case strings.Contains(errorMsg, "network") || strings.Contains(errorMsg, "connection") || strings.Contains(errorMsg, "dns"):
		return "network"
	}
	return "other"
}

// Reset clears all health monitoring data
func (h *HealthMonitor) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalChecks = 0
	h.successfulChecks = 0
	h.failedChecks = 0
	h.consecutiveFailures = 0
	h.totalLatency = 0
	h.lastFailureTime = time.Time{}
	h.lastSuccessTime = time.Time{}
	h.recentFailures = h.recentFailures[:0]
}
