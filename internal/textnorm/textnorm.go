package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Punctuation stripped before comparison: ideographic stop and comma, corner
// and white-corner brackets, both parenthesis styles, and the horizontal
// ellipsis. The ideographic space U+3000 is covered by unicode.IsSpace.
const strippedPunctuation = "。、「」『』（）()…"

// Normalize canonicalizes text for comparison: every Unicode whitespace
// character and every mark in strippedPunctuation is removed, and literal
// "..." sequences collapse to nothing. Idempotent and never longer than its
// input. There is no case folding; the dialogue alphabet does not use case.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	// Stripping runs first so ". . ." style spacing cannot hide a literal
	// ellipsis from this pass. A dot run of any length shrinks to len%3 dots,
	// which a second pass leaves unchanged.
	return strings.ReplaceAll(b.String(), "...", "")
}

// FoldWidth maps half-width katakana and full-width latin forms to their
// canonical widths. OCR engines mix widths freely; fold OCR-derived text so
// ｱ and ア count as the same character.
func FoldWidth(text string) string {
	return width.Fold.String(text)
}

// Fold normalizes after width folding, for direct comparisons of
// OCR-derived strings.
func Fold(text string) string {
	return Normalize(FoldWidth(text))
}
