// Package checker talks to the grammar checking backend.
package checker

import "context"

// MaxReplacements is how many suggestions are kept per match.
const MaxReplacements = 3

// GrammarMatch is one issue flagged by the grammar checker.
type GrammarMatch struct {
	Message      string   `json:"message"`
	Context      string   `json:"context"`
	Replacements []string `json:"suggestions"`
	Offset       int      `json:"-"`
	Length       int      `json:"-"`
	RuleID       string   `json:"-"`
}

// Checker checks text and returns matches in the order the backend reports them.
type Checker interface {
	Check(ctx context.Context, text string) ([]GrammarMatch, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, text string) ([]GrammarMatch, error)

func (f CheckerFunc) Check(ctx context.Context, text string) ([]GrammarMatch, error) {
	return f(ctx, text)
}

func truncateReplacements(values []string) []string {
	if len(values) > MaxReplacements {
		return values[:MaxReplacements]
	}
	return values
}
