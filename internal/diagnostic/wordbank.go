package diagnostic

import (
	"errors"
	"strings"
)

var (
	// ErrWordUsed is returned when a word bank entry has already been placed.
	ErrWordUsed = errors.New("word already placed")

	// ErrWordIndex is returned for an index outside the word bank.
	ErrWordIndex = errors.New("word index out of range")
)

// WordBank tracks a sentence being assembled from the options of an
// order-sentence question. Every entry is an occurrence: a word listed twice
// can be placed twice, and placing one occurrence leaves the other usable.
type WordBank struct {
	words  []string
	used   []bool
	placed []int
}

// NewWordBank returns an empty word bank over words.
func NewWordBank(words []string) *WordBank {
	return &WordBank{
		words: append([]string(nil), words...),
		used:  make([]bool, len(words)),
	}
}

// Words returns the available entries in display order.
func (w *WordBank) Words() []string {
	return append([]string(nil), w.words...)
}

// Len returns the number of entries.
func (w *WordBank) Len() int { return len(w.words) }

// Used reports whether entry i has been placed.
func (w *WordBank) Used(i int) bool {
	return i >= 0 && i < len(w.used) && w.used[i]
}

// Place appends entry i to the sentence.
func (w *WordBank) Place(i int) error {
	if i < 0 || i >= len(w.words) {
		return ErrWordIndex
	}
	if w.used[i] {
		return ErrWordUsed
	}
	w.used[i] = true
	w.placed = append(w.placed, i)
	return nil
}

// Undo removes the most recently placed entry. It is a no-op on an empty
// sentence.
func (w *WordBank) Undo() {
	if len(w.placed) == 0 {
		return
	}
	last := w.placed[len(w.placed)-1]
	w.placed = w.placed[:len(w.placed)-1]
	w.used[last] = false
}

// Reset clears the sentence and makes every entry available again.
func (w *WordBank) Reset() {
	w.placed = w.placed[:0]
	clear(w.used)
}

// Placed returns the placed words in order.
func (w *WordBank) Placed() []string {
	out := make([]string, len(w.placed))
	for n, i := range w.placed {
		out[n] = w.words[i]
	}
	return out
}

// CanSubmit reports whether at least one word has been placed.
func (w *WordBank) CanSubmit() bool {
	return len(w.placed) > 0
}

// Sentence joins the placed words with single spaces.
func (w *WordBank) Sentence() string {
	return strings.Join(w.Placed(), " ")
}
