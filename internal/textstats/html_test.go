package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText_PassesThroughPlainInput(t *testing.T) {
	in := "Prices rose when 3 < 5 and demand grew."
	out, err := PlainText(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPlainText_StripsMarkup(t *testing.T) {
	in := `<p>First paragraph is <b>bold</b>.</p><p>Second &amp; last.</p><script>alert(1)</script>`
	out, err := PlainText(in)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph is bold.\nSecond & last.", out)
}

func TestPlainText_LineBreaks(t *testing.T) {
	out, err := PlainText("Dear Sir,<br>I am writing to complain.<br/>Yours faithfully")
	require.NoError(t, err)
	assert.Equal(t, "Dear Sir,\nI am writing to complain.\nYours faithfully", out)
}

func TestPlainText_AngleBracketedWordsAreNotMarkup(t *testing.T) {
	for _, in := range []string{
		"Prices rose when demand <q and supply> fell sharply in most regions.",
		"The <tag> placeholder and <x-value/> were left in the draft.",
	} {
		out, err := PlainText(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}
