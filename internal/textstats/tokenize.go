// Package textstats computes the lexical and structural measurements the band
// tables are keyed on.
package textstats

import (
	"strings"
	"sync"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var (
	sentenceTokenizer     *sentences.DefaultSentenceTokenizer
	sentenceTokenizerErr  error
	sentenceTokenizerOnce sync.Once
)

func loadSentenceTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	sentenceTokenizerOnce.Do(func() {
		sentenceTokenizer, sentenceTokenizerErr = english.NewSentenceTokenizer(nil)
	})
	return sentenceTokenizer, sentenceTokenizerErr
}

// Words splits text into word tokens using Unicode word boundaries.
// Whitespace and punctuation-only segments are dropped.
func Words(text string) []string {
	var out []string
	tokens := words.FromString(text)
	for tokens.Next() {
		tok := tokens.Value()
		if isWord(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// clitics are split off the end of a word, as in "don't" -> "do", "n't".
var clitics = []string{"n't", "'ll", "'re", "'ve", "'s", "'m", "'d"}

// Tokens splits text into word and punctuation tokens for sentence-length
// statistics. Every punctuation mark is its own token, adjacent full stops
// form one ellipsis, and contractions are split into stem and clitic.
func Tokens(text string) []string {
	var (
		out     []string
		prevDot bool
	)
	segments := words.FromString(text)
	for segments.Next() {
		seg := segments.Value()
		if strings.TrimSpace(seg) == "" {
			prevDot = false
			continue
		}
		if seg == "." && prevDot {
			out[len(out)-1] += seg
			continue
		}
		prevDot = seg == "."
		out = append(out, splitClitic(seg)...)
	}
	return out
}

func splitClitic(tok string) []string {
	lower := strings.ToLower(tok)
	for _, c := range clitics {
		if len(tok) > len(c) && strings.HasSuffix(lower, c) {
			cut := len(tok) - len(c)
			return []string{tok[:cut], tok[cut:]}
		}
	}
	return []string{tok}
}

// Sentences splits text into sentences with the Punkt English model.
func Sentences(text string) ([]string, error) {
	tokenizer, err := loadSentenceTokenizer()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, s := range tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

func isWord(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
