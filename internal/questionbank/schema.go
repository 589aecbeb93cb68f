package questionbank

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var stringList = map[string]any{
	"type":     "array",
	"items":    map[string]any{"type": "string", "minLength": 1},
	"minItems": 1,
}

// diagnosticSchema describes data/diagnostic.yaml.
var diagnosticSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"id", "kind", "prompt", "answer"},
				"additionalProperties": false,
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "minLength": 1},
					"kind":    map[string]any{"enum": []any{string(KindMultipleChoice), string(KindFillInBlank), string(KindOrderSentence)}},
					"prompt":  map[string]any{"type": "string", "minLength": 1},
					"options": stringList,
					"answer":  map[string]any{"type": "string", "minLength": 1},
				},
				"if": map[string]any{
					"properties": map[string]any{"kind": map[string]any{"const": string(KindFillInBlank)}},
				},
				"then": map[string]any{"not": map[string]any{"required": []any{"options"}}},
				"else": map[string]any{"required": []any{"options"}},
			},
		},
	},
}

// exercisesSchema describes data/exercises.yaml.
var exercisesSchema = map[string]any{
	"type":     "object",
	"required": []any{"topics"},
	"properties": map[string]any{
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"name", "questions"},
				"additionalProperties": false,
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":                 "object",
							"required":             []any{"prompt", "options", "answer", "explanation"},
							"additionalProperties": false,
							"properties": map[string]any{
								"prompt":      map[string]any{"type": "string", "minLength": 1},
								"options":     stringList,
								"answer":      map[string]any{"type": "string", "minLength": 1},
								"explanation": map[string]any{"type": "string", "minLength": 1},
							},
						},
					},
				},
			},
		},
	},
}

// compileSchema compiles a schema definition registered under name.
func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://stinglish/%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return compiled, nil
}
