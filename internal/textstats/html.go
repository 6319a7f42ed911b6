package textstats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var markupPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)

const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, blockquote, tr, section, article"

// editorElements are the tags rich text editors emit. Input whose markup
// contains none of them is treated as plain text.
const editorElements = blockElements + ", br, ul, ol, table, td, span, b, i, u, em, strong"

// PlainText returns the readable text of an essay. Input pasted from rich
// text editors arrives as HTML; block elements become line breaks. Text
// without editor markup, including prose with angle-bracketed words, is
// returned unchanged.
func PlainText(raw string) (string, error) {
	if !markupPattern.MatchString(raw) {
		return raw, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML essay: %w", err)
	}

	if doc.Find(editorElements).Length() == 0 {
		return raw, nil
	}

	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).AppendHtml("\n")

	lines := strings.Split(doc.Text(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}
