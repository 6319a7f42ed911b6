package textstats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const topWordsLimit = 5

// WordCount is a token and how often it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// LexicalStats describes vocabulary range.
type LexicalStats struct {
	TotalWords     int         `json:"total_words"`
	UniqueWords    int         `json:"unique_words"`
	TypeTokenRatio float64     `json:"ttr"`
	MostCommon     []WordCount `json:"most_common"`
}

// Lexical lowercases the text, strips punctuation, and counts tokens longer
// than one character.
func Lexical(text string) LexicalStats {
	tokens := LexicalTokens(text)

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	stats := LexicalStats{
		TotalWords:  len(tokens),
		UniqueWords: len(order),
		MostCommon:  topWords(order, counts, topWordsLimit),
	}
	if stats.TotalWords > 0 {
		stats.TypeTokenRatio = float64(stats.UniqueWords) / float64(stats.TotalWords) * 100
	}
	return stats
}

// LexicalTokens returns the normalised tokens Lexical counts, in text order.
func LexicalTokens(text string) []string {
	lower := cases.Lower(language.English).String(norm.NFC.String(text))
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) || unicode.IsSpace(r) || r == '_' {
			return r
		}
		return -1
	}, lower)

	var out []string
	for _, tok := range Words(stripped) {
		if utf8.RuneCountInString(tok) > 1 {
			out = append(out, tok)
		}
	}
	return out
}

// topWords ranks by count; equal counts keep first-seen order.
func topWords(order []string, counts map[string]int, n int) []WordCount {
	ranked := make([]WordCount, 0, len(order))
	for _, w := range order {
		ranked = append(ranked, WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
