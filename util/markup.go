package util

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// CleanMarkup turns free text that may carry HTML into a single display line.
// Entities are decoded once, every tag closed by '>' is replaced with a space,
// comments are dropped, and whitespace runs are collapsed and trimmed. An
// unterminated "<y" is kept as text.
//
// The function is not idempotent: text that still contains entities after the
// first decode (e.g. "&amp;lt;") is decoded one more level on a second call.
func CleanMarkup(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(s)

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		raw := z.Raw()
		switch {
		case tt == html.ErrorToken:
			// a tag cut off by the end of input is still text
			b.Write(raw)
			return strings.Join(strings.Fields(b.String()), " ")
		case tt == html.TextToken:
			// Raw keeps already-decoded text from being unescaped twice.
			b.Write(raw)
		case bytes.HasSuffix(raw, []byte(">")):
			b.WriteByte(' ')
		default:
			b.Write(raw)
		}
	}
}
