package problemgen

import "github.com/priyad/mathventure/internal/llm"

// StorySchema defines the JSON schema for LLM word-problem responses. The
// model only writes the story; the expression and answer come from the
// local generator.
var StorySchema = &llm.Schema{
	Name:        "word-problem",
	Description: "A short story framing of a fixed arithmetic expression",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story": map[string]any{
				"type":        "string",
				"minLength":   10,
				"description": "The word problem shown to the learner, in plain ASCII text, ending with a question",
			},
		},
		"required":             []any{"story"},
		"additionalProperties": false,
	},
}
