package analysis

import (
	"math"
	"time"

	"github.com/ajharbinger/ielts-band-estimator/internal/checker"
	"github.com/ajharbinger/ielts-band-estimator/internal/scoring"
	"github.com/ajharbinger/ielts-band-estimator/internal/textstats"
)

// Essay is one submission.
type Essay struct {
	Text     string
	TaskType scoring.TaskType
}

// Report is the full result of analysing an essay. It is built once and not
// modified afterwards.
type Report struct {
	ID              string                   `json:"id"`
	TaskType        scoring.TaskType         `json:"task_type"`
	AnalyzedAt      time.Time                `json:"analyzed_at"`
	Errors          []checker.GrammarMatch   `json:"errors"`
	ErrorCount      int                      `json:"error_count"`
	Lexical         textstats.LexicalStats   `json:"lexical"`
	Structure       textstats.StructureStats `json:"structure"`
	Scores          scoring.Scores           `json:"scores"`
	Feedback        []string                 `json:"feedback"`
	Notes           []string                 `json:"notes"`
	LTToolAvailable bool                     `json:"lt_tool_available"`
	JavaAvailable   bool                     `json:"java_available"`
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
