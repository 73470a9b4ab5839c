package prompt

import (
	gomath "math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/lightrig/internal/angle"
)

// PhraseSeparator separates phrases in a custom phrase list.
const PhraseSeparator = "|"

// ColorMarker is replaced by the hex color in a color template.
const ColorMarker = "$1"

// ParsePhraseList splits a "|"-separated list into trimmed, NFC-normalised phrases.
// A list that is empty after trimming returns nil, meaning "no override".
func ParsePhraseList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, PhraseSeparator)
	phrases := make([]string, len(parts))
	for i, p := range parts {
		phrases[i] = norm.NFC.String(strings.TrimSpace(p))
	}
	return phrases
}

// Quantize maps value in [min, max] onto one of n equal-width buckets.
// The result is always in [0, n-1]; value == max lands in the last bucket.
func Quantize(value, min, max float64, n int) int {
	if n <= 1 || max == min || gomath.IsNaN(value) {
		return 0
	}
	normalized := (value - min) / (max - min)
	idx := gomath.Floor(normalized * float64(n))
	if idx < 0 {
		return 0
	}
	if idx > float64(n-1) {
		return n - 1
	}
	return int(idx)
}

// pickPhrase selects the phrase for value from a custom list.
// ok is false when the list gives no override.
func pickPhrase(value, min, max float64, list string) (phrase string, ok bool) {
	phrases := ParsePhraseList(list)
	if len(phrases) == 0 {
		return "", false
	}
	return phrases[Quantize(value, min, max, len(phrases))], true
}

// ColorClause renders a color template: empty gives no clause, a template holding
// the marker gets the hex color substituted, anything else is used verbatim.
func ColorClause(template string, c angle.Color) string {
	if strings.TrimSpace(template) == "" {
		return ""
	}
	if strings.Contains(template, ColorMarker) {
		return strings.Replace(template, ColorMarker, c.String(), 1)
	}
	return template
}

// joinClauses joins the non-empty clauses with sep.
func joinClauses(sep string, clauses ...string) string {
	kept := clauses[:0:0]
	for _, c := range clauses {
		if strings.TrimSpace(c) != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, sep)
}
