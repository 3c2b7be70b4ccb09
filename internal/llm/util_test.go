package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain JSON passes through",
			input:    `{"overall_score": 80}`,
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"overall_score\": 80}\n```",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "Generic fenced block",
			input:    "```\n{\"overall_score\": 80}\n```",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "Surrounding whitespace",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestConfig_ResolveModel(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultModel, cfg.ResolveModel(""))
	assert.Equal(t, "gemini-2.5-pro", cfg.ResolveModel("gemini-2.5-pro"))
}
