// Package analysis runs the essay scoring pipeline: grammar check, lexical
// and structural statistics, band estimation and feedback.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajharbinger/ielts-band-estimator/internal/checker"
	apperrors "github.com/ajharbinger/ielts-band-estimator/internal/errors"
	"github.com/ajharbinger/ielts-band-estimator/internal/logger"
	"github.com/ajharbinger/ielts-band-estimator/internal/scoring"
	"github.com/ajharbinger/ielts-band-estimator/internal/textstats"
)

// Analyzer produces reports. It holds no per-request state.
type Analyzer struct {
	checker       checker.Checker
	javaAvailable bool
	log           logger.Logger
	now           func() time.Time
}

// NewAnalyzer creates an analyzer around the grammar checker.
func NewAnalyzer(c checker.Checker, javaAvailable bool, log logger.Logger) *Analyzer {
	return &Analyzer{
		checker:       c,
		javaAvailable: javaAvailable,
		log:           log,
		now:           time.Now,
	}
}

// Validate rejects blank essays and fills in the default task type.
func Validate(e Essay) (Essay, error) {
	if strings.TrimSpace(e.Text) == "" {
		return e, apperrors.InvalidInput("Please provide text to analyze", nil)
	}
	if e.TaskType == "" {
		e.TaskType = scoring.TaskEssay
	}
	return e, nil
}

// Analyze runs the full pipeline. A failed grammar check fails the whole
// analysis; no partial report is returned.
func (a *Analyzer) Analyze(ctx context.Context, essay Essay) (report *Report, err error) {
	essay, err = Validate(essay)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = apperrors.AnalysisError("Analysis failed", fmt.Errorf("%v", r)).WithOperation("analyze")
			a.log.Error("analysis panicked", err)
		}
	}()

	text, err := textstats.PlainText(essay.Text)
	if err != nil {
		return nil, apperrors.AnalysisError("Analysis failed", err).WithOperation("plain_text")
	}

	matches, err := a.checker.Check(ctx, text)
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.CheckerUnavailable("Grammar checking failed", err).WithOperation("check")
	}

	lexical := textstats.Lexical(text)
	structure, err := textstats.Structure(text)
	if err != nil {
		return nil, apperrors.AnalysisError("Analysis failed", err).WithOperation("structure")
	}

	scores := scoring.Estimate(scoring.Inputs{
		TaskType:          essay.TaskType,
		ErrorCount:        len(matches),
		WordCount:         lexical.TotalWords,
		TypeTokenRatio:    lexical.TypeTokenRatio,
		SentenceCount:     structure.SentenceCount,
		AvgSentenceLength: structure.AvgSentenceLength,
	})
	feedback := scoring.Feedback(scores, len(matches), lexical.TypeTokenRatio, structure.AvgSentenceLength)

	if matches == nil {
		matches = []checker.GrammarMatch{}
	}
	if lexical.MostCommon == nil {
		lexical.MostCommon = []textstats.WordCount{}
	}

	report = &Report{
		ID:              uuid.New().String(),
		TaskType:        essay.TaskType,
		AnalyzedAt:      a.now().UTC(),
		Errors:          matches,
		ErrorCount:      len(matches),
		Lexical:         lexical,
		Structure:       structure,
		Scores:          scores,
		Feedback:        feedback,
		Notes:           scoring.Notes(),
		LTToolAvailable: true,
		JavaAvailable:   a.javaAvailable,
	}
	report.Lexical.TypeTokenRatio = roundTo(lexical.TypeTokenRatio, 2)
	report.Structure.AvgSentenceLength = roundTo(structure.AvgSentenceLength, 1)
	report.Scores.ErrorDensity = roundTo(scores.ErrorDensity, 2)

	a.log.Info("essay analyzed",
		"report_id", report.ID,
		"task_type", string(essay.TaskType),
		"words", lexical.TotalWords,
		"error_count", len(matches),
		"task_score", scores.TaskScore,
	)
	return report, nil
}
