// Package proficiency maps diagnostic scores onto coarse CEFR bands.
package proficiency

// Level is a coarse CEFR proficiency band.
type Level int

const (
	Unknown Level = iota
	A1
	A2
	B1
)

// Score thresholds, in percent of questions answered correctly.
const (
	a2Threshold = 40.0
	b1Threshold = 70.0
)

// Label returns the display label for the level, e.g. "A2 (Elementary)".
func (l Level) Label() string {
	switch l {
	case A1:
		return "A1 (Beginner)"
	case A2:
		return "A2 (Elementary)"
	case B1:
		return "B1 (Intermediate)"
	default:
		return "Unknown"
	}
}

// String returns the short band code ("A1", "A2", "B1" or "Unknown").
func (l Level) String() string {
	switch l {
	case A1:
		return "A1"
	case A2:
		return "A2"
	case B1:
		return "B1"
	default:
		return "Unknown"
	}
}

// FromScore derives the level from a raw score. A test with no questions
// yields Unknown.
func FromScore(score, total int) Level {
	if total <= 0 {
		return Unknown
	}
	pct := Percentage(score, total)
	switch {
	case pct < a2Threshold:
		return A1
	case pct < b1Threshold:
		return A2
	default:
		return B1
	}
}

// Percentage returns score/total as a percentage. Zero when total is zero.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
