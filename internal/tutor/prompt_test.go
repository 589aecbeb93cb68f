package tutor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stinglish/stinglish/internal/diagnostic"
)

var testTopics = []string{
	"Present Simple vs. Continuous",
	"Past Simple",
	"Prepositions of Time",
	"Phrasal Verbs (Common)",
	"Articles (a, an, the)",
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"exact", "Past Simple", "Past Simple"},
		{"surrounding whitespace", "  Past Simple\n", "Past Simple"},
		{"double quotes", `"Prepositions of Time"`, "Prepositions of Time"},
		{"backticks", "`Articles (a, an, the)`", "Articles (a, an, the)"},
		{"single quotes", "'Past Simple'", "Past Simple"},
		{"substring case-insensitive", "phrasal verbs", "Phrasal Verbs (Common)"},
		{"substring picks first topic", "simple", "Present Simple vs. Continuous"},
		{"no match", "Conditionals", ""},
		{"empty", "", ""},
		{"only quotes", `"''"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTopic(tt.reply, testTopics))
		})
	}
}

func TestBuildWeaknessPrompt(t *testing.T) {
	incorrect := []diagnostic.IncorrectAnswer{
		{Question: "She ___ to school every day.", UserAnswer: "go", CorrectAnswer: "goes"},
		{Question: "I was born ___ 1990.", UserAnswer: "on", CorrectAnswer: "in"},
	}

	got := BuildWeaknessPrompt(testTopics, incorrect)

	assert.True(t, strings.HasPrefix(got, "Based on these incorrect answers from an English learner"))
	assert.Contains(t, got, "The available topics are: Present Simple vs. Continuous, Past Simple, Prepositions of Time, Phrasal Verbs (Common), Articles (a, an, the). ")
	assert.Contains(t, got, "Incorrect Answers:\n"+
		`- Question: "She ___ to school every day.", User Answer: "go", Correct: "goes"`+"\n"+
		`- Question: "I was born ___ 1990.", User Answer: "on", Correct: "in"`)
	assert.True(t, strings.HasSuffix(got, "\n\nTopic to practice:"))
}

func TestSystemPrompt(t *testing.T) {
	got := SystemPrompt("A2 (Elementary)")
	assert.Contains(t, got, "You are Stinglish, a friendly and supportive English tutor.")
	assert.Contains(t, got, "whose level is A2 (Elementary).")
	assert.Contains(t, got, "Do not reveal you are an AI model.")
}
