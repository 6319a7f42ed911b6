package textstats

import "fmt"

// StructureStats describes sentence-level structure.
type StructureStats struct {
	SentenceCount     int     `json:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
}

// Structure counts sentences and the mean number of tokens per sentence.
// Punctuation marks count as tokens.
func Structure(text string) (StructureStats, error) {
	sents, err := Sentences(text)
	if err != nil {
		return StructureStats{}, fmt.Errorf("split sentences: %w", err)
	}

	stats := StructureStats{SentenceCount: len(sents)}
	if stats.SentenceCount > 0 {
		stats.AvgSentenceLength = float64(len(Tokens(text))) / float64(stats.SentenceCount)
	}
	return stats, nil
}
