package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Empty column", "", []string{}},
		{"Whitespace column", "   ", []string{}},
		{"Single skill", "Python", []string{"Python"}},
		{"Authored sequence kept verbatim", "Python, SQL,AWS", []string{"Python", " SQL", "AWS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSkills(tt.input))
		})
	}
}

func TestDecodeSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []string
	}{
		{"Nil column", nil, []string{}},
		{"JSON null", []byte("null"), []string{}},
		{"Empty array", []byte("[]"), []string{}},
		{"Skill list", []byte(`["Python","SQL"]`), []string{"Python", "SQL"}},
		{"Garbage", []byte("{broken"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeSkills(tt.input))
		})
	}
}

func TestNullableText(t *testing.T) {
	assert.Nil(t, nullableText(""))
	assert.Equal(t, "cand-1", nullableText("cand-1"))
}
