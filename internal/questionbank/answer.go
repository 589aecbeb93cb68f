package questionbank

import (
	"strings"

	"golang.org/x/text/cases"
)

// Match reports whether a learner's answer equals the correct answer.
// Surrounding whitespace is ignored and letters are compared with Unicode
// case folding. There is no partial credit.
func Match(given, correct string) bool {
	return Normalize(given) == Normalize(correct)
}

// Normalize trims s and folds its case.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
