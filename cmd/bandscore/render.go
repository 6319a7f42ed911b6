package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ajharbinger/ielts-band-estimator/internal/analysis"
	"github.com/ajharbinger/ielts-band-estimator/internal/checker"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	overallCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#C89A3A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

func renderReport(r *analysis.Report) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		bandCard(cardStyle, "TA", r.Scores.TA),
		bandCard(cardStyle, "CC", r.Scores.CC),
		bandCard(cardStyle, "LR", r.Scores.LR),
		bandCard(cardStyle, "GRA", r.Scores.GRA),
		bandCard(overallCardStyle, "Overall", r.Scores.TaskScore),
	)

	stats := mutedStyle.Render(fmt.Sprintf(
		"%d words, %d unique (TTR %.1f%%) · %d sentences, avg %.1f words · %d issues (%.2f per 100 words)",
		r.Lexical.TotalWords, r.Lexical.UniqueWords, r.Lexical.TypeTokenRatio,
		r.Structure.SentenceCount, r.Structure.AvgSentenceLength,
		r.ErrorCount, r.Scores.ErrorDensity,
	))

	sections := []string{
		titleStyle.Render(fmt.Sprintf("IELTS %s estimate", r.TaskType)),
		cards,
		stats,
	}

	if len(r.Errors) > 0 {
		lines := []string{titleStyle.Render("Grammar")}
		for _, m := range r.Errors {
			line := "• " + m.Message
			if len(m.Replacements) > 0 {
				line += mutedStyle.Render(" → " + strings.Join(m.Replacements, ", "))
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	sections = append(sections, strings.Join(r.Feedback, "\n"))
	for _, note := range r.Notes {
		sections = append(sections, mutedStyle.Render(note))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func bandCard(style lipgloss.Style, label string, band float64) string {
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(label),
		cardValueStyle.Render(fmt.Sprintf("%.1f", band)),
	))
}

func renderHealth(h *checker.Handle) string {
	status := okStyle.Render("available")
	if !h.Available() {
		status = errorStyle.Render("unavailable")
		if err := h.InitError(); err != nil {
			status += mutedStyle.Render(" (" + err.Error() + ")")
		}
	}
	java := "no"
	if h.JavaAvailable() {
		java = "yes"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Grammar checker"),
		"backend: "+h.Backend(),
		"status:  "+status,
		"java:    "+java,
	)
}
