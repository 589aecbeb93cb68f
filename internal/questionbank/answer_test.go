package questionbank

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		given, correct string
		want           bool
	}{
		{"is", "is", true},
		{"Is", "is", true},
		{" is ", "is", true},
		{"IS", "is", true},
		{"\tthursday\n", "thursday", true},
		{"Thursday", "thursday", true},
		{"has studied", "has studied", true},
		{"has  studied", "has studied", false},
		{"are", "is", false},
		{"", "is", false},
		{"my favorite color is blue", "My favorite color is blue", true},
	}
	for _, tt := range tests {
		if got := Match(tt.given, tt.correct); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.given, tt.correct, got, tt.want)
		}
	}
}
