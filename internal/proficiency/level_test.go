package proficiency

import "testing"

func TestFromScore(t *testing.T) {
	tests := []struct {
		score, total int
		want         Level
	}{
		{0, 0, Unknown},
		{0, 10, A1},
		{3, 10, A1},
		{4, 10, A2},
		{5, 10, A2},
		{6, 10, A2},
		{7, 10, B1},
		{8, 10, B1},
		{10, 10, B1},
		{1, 3, A1},
		{2, 3, A2},
	}
	for _, tt := range tests {
		got := FromScore(tt.score, tt.total)
		if got != tt.want {
			t.Errorf("FromScore(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{A1, "A1 (Beginner)"},
		{A2, "A2 (Elementary)"},
		{B1, "B1 (Intermediate)"},
		{Unknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.Label(); got != tt.want {
			t.Errorf("%v.Label() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
