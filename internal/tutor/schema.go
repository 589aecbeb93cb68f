package tutor

import (
	"encoding/json"

	"github.com/stinglish/stinglish/internal/llm"
)

// TopicSchema constrains the topic inference reply to one of topics.
func TopicSchema(topics []string) *llm.Schema {
	enum := make([]any, len(topics))
	for i, t := range topics {
		enum[i] = t
	}
	return &llm.Schema{
		Name:        "topic-choice",
		Description: "The single exercise topic the learner should practice next",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"enum":        enum,
					"description": "One of the available topic names, copied exactly",
				},
			},
			"required":             []any{"topic"},
			"additionalProperties": false,
		},
	}
}

type topicChoice struct {
	Topic string `json:"topic"`
}

// topicReply extracts the topic text from a reply. Providers without
// structured output answer in plain text, which is returned as is.
func topicReply(content json.RawMessage) string {
	var choice topicChoice
	if err := json.Unmarshal(content, &choice); err == nil && choice.Topic != "" {
		return choice.Topic
	}
	return string(content)
}
