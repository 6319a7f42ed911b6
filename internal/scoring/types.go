package scoring

import (
	"fmt"
	"strings"
)

// TaskType identifies the kind of IELTS writing task being assessed.
type TaskType string

const (
	TaskEssay  TaskType = "essay"
	TaskReport TaskType = "report"
	TaskLetter TaskType = "letter"
)

// ParseTaskType maps a request value onto a TaskType. Empty input means essay.
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(strings.ToLower(strings.TrimSpace(s))) {
	case "", TaskEssay:
		return TaskEssay, nil
	case TaskReport:
		return TaskReport, nil
	case TaskLetter:
		return TaskLetter, nil
	}
	return "", fmt.Errorf("unknown task type %q (expected essay, report or letter)", s)
}

// Inputs are the measurements the band tables are keyed on.
type Inputs struct {
	TaskType          TaskType
	ErrorCount        int
	WordCount         int     // lexical tokens, after punctuation stripping
	TypeTokenRatio    float64 // percent, 0-100
	SentenceCount     int
	AvgSentenceLength float64
}

// Scores holds the four criterion bands plus the derived task score.
type Scores struct {
	TA           float64 `json:"ta"`
	CC           float64 `json:"cc"`
	LR           float64 `json:"lr"`
	GRA          float64 `json:"gra"`
	TaskScore    float64 `json:"task_score"`
	ErrorDensity float64 `json:"error_density"`
}
