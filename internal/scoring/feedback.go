package scoring

import "fmt"

// Feedback renders the advice lines shown under the scores.
func Feedback(s Scores, errorCount int, ttr, avgSentenceLength float64) []string {
	lines := make([]string, 0, 4)

	switch {
	case s.GRA >= 7 && s.LR >= 7:
		lines = append(lines, "✓ Excellent! Your writing shows good command of grammar and vocabulary.")
	case s.GRA >= 6 && s.LR >= 6:
		lines = append(lines, "✓ Good work! Some minor improvements needed.")
	default:
		lines = append(lines, "⚠ Needs improvement in grammar accuracy and vocabulary variety.")
	}

	if errorCount > 0 {
		lines = append(lines, fmt.Sprintf("• Focus on fixing errors (found %d)", errorCount))
	}
	if ttr < 55 {
		lines = append(lines, fmt.Sprintf("• Expand vocabulary variety (TTR: %.1f%%)", ttr))
	}
	if avgSentenceLength < 12 {
		lines = append(lines, fmt.Sprintf("• Use more complex sentences (avg: %.1f words)", avgSentenceLength))
	}

	return lines
}

// Notes are the fixed disclaimers attached to every report.
func Notes() []string {
	return []string{
		"⚠️ TA and CC scores are ESTIMATES - they require human assessment.",
		"Only GRA and LR scores are reliably assessed automatically.",
	}
}
