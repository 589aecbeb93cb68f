package tutor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/stinglish/stinglish/internal/diagnostic"
	"github.com/stinglish/stinglish/internal/questionbank"
)

const systemPromptTemplate = `You are Stinglish, a friendly and supportive English tutor. You are chatting with a student whose level is %s. Your tone should be professional, pedagogical, and motivating. Keep your responses tailored to their level. Do not reveal you are an AI model.`

// SystemPrompt returns the conversation instruction for a learner at the
// given level label.
func SystemPrompt(levelLabel string) string {
	return fmt.Sprintf(systemPromptTemplate, levelLabel)
}

// BuildWeaknessPrompt asks the model to pick one of topics based on the
// learner's incorrect answers.
func BuildWeaknessPrompt(topics []string, incorrect []diagnostic.IncorrectAnswer) string {
	var b strings.Builder

	b.WriteString("Based on these incorrect answers from an English learner, identify the single most important grammar or vocabulary topic they should practice. ")
	fmt.Fprintf(&b, "The available topics are: %s. ", strings.Join(topics, ", "))
	b.WriteString("Please respond with only one of these topic names. If no specific topic fits well, suggest the most relevant one based on the errors.\n\n")

	b.WriteString("Incorrect Answers:\n")
	lines := make([]string, len(incorrect))
	for i, a := range incorrect {
		lines[i] = fmt.Sprintf(`- Question: "%s", User Answer: "%s", Correct: "%s"`, a.Question, a.UserAnswer, a.CorrectAnswer)
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\nTopic to practice:")
	return b.String()
}

var quoteStripper = strings.NewReplacer("`", "", `"`, "", "'", "")

// MatchTopic maps a model reply onto one of topics. The reply is trimmed
// and stripped of backticks and quotes, then matched exactly, then against
// the first topic whose case-folded name contains it. No match, or an
// empty reply, yields "".
func MatchTopic(reply string, topics []string) string {
	cleaned := strings.TrimSpace(quoteStripper.Replace(strings.TrimSpace(reply)))
	if cleaned == "" {
		return ""
	}
	if slices.Contains(topics, cleaned) {
		return cleaned
	}
	needle := questionbank.Normalize(cleaned)
	for _, t := range topics {
		if strings.Contains(questionbank.Normalize(t), needle) {
			return t
		}
	}
	return ""
}
