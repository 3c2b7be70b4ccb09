package extraction

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/lexicon"
	"github.com/stretchr/testify/assert"
)

func TestExtractor_WholeTokenMatching(t *testing.T) {
	ex := NewExtractor(lexicon.Default())

	tests := []struct {
		name    string
		text    string
		present []string
		absent  []string
	}{
		{
			name:    "Java not matched inside JavaScript",
			text:    "Senior JavaScript developer",
			present: []string{"JavaScript"},
			absent:  []string{"Java"},
		},
		{
			name:    "HTML not matched inside HTML5",
			text:    "Built pages with HTML5 and CSS3",
			present: []string{"HTML5", "CSS3"},
			absent:  []string{"HTML", "CSS"},
		},
		{
			name:    "Both tokens when separate",
			text:    "Java and JavaScript, HTML and HTML5",
			present: []string{"Java", "JavaScript", "HTML", "HTML5"},
		},
		{
			name:    "Punctuated entries at sentence edges",
			text:    "Fluent in C++. Set up CI/CD pipelines.",
			present: []string{"C++", "CI/CD"},
		},
		{
			name:    "Case insensitive",
			text:    "worked with python, sql and aws",
			present: []string{"Python", "SQL", "AWS"},
		},
		{
			name:    "Multi-word entry with flexible spacing",
			text:    "Applied machine  learning in production",
			present: []string{"Machine Learning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Extract(tt.text).Skills
			for _, skill := range tt.present {
				assert.Contains(t, got, skill)
			}
			for _, skill := range tt.absent {
				assert.NotContains(t, got, skill)
			}
		})
	}
}

func TestExtractor_SkillsInLexiconOrder(t *testing.T) {
	lex := lexicon.New([]string{"Python", "SQL", "AWS"})
	ex := NewExtractor(lex)

	got := ex.Extract("AWS first, then SQL, finally Python").Skills

	assert.Equal(t, []string{"Python", "SQL", "AWS"}, got,
		"skills follow lexicon order, not text order")
}

func TestExtractor_EmptyText(t *testing.T) {
	ex := NewExtractor(lexicon.Default())

	got := ex.Extract("")

	assert.NotNil(t, got.Skills)
	assert.Empty(t, got.Skills)
	assert.Equal(t, 0, got.YearsExperience)
	assert.Equal(t, "", got.RawText)
}

func TestExtractor_NoDuplicateSkills(t *testing.T) {
	lex := lexicon.New([]string{"Python"})
	ex := NewExtractor(lex)

	got := ex.Extract("Python, python, PYTHON everywhere").Skills

	assert.Equal(t, []string{"Python"}, got)
}

func TestExtractExperience(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"Years of experience", "I have 5 years of experience", 5},
		{"Plus suffix", "10+ years of experience in backend", 10},
		{"Experience of form", "experience of 4 years in retail", 4},
		{"Worked for form", "worked for 3 years at a startup", 3},
		{"Years in form", "7 years in data engineering", 7},
		{"Singular year", "1 year of experience", 1},
		{"No statement", "motivated self-starter", 0},
		{"Empty text", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractExperience(tt.text))
		})
	}
}

func TestExtractExperience_FirstPatternWins(t *testing.T) {
	// Pattern order decides, not textual position or magnitude.
	text := "worked for 9 years before that, now 3 years of experience in Go"
	assert.Equal(t, 3, extractExperience(text),
		"the years-of-experience pattern is tried before worked-for")

	text = "experience of 4 years, worked for 9 years"
	assert.Equal(t, 4, extractExperience(text))
}

func TestExtractor_FullResume(t *testing.T) {
	ex := NewExtractor(lexicon.Default())

	got := ex.Extract("Data engineer with 6 years of experience. Python, SQL, Spark, AWS, Docker.")

	assert.Equal(t, 6, got.YearsExperience)
	assert.Subset(t, got.Skills, []string{"Python", "SQL", "Spark", "AWS", "Docker"})
}

func TestExtractor_SkillsSubsetOfLexicon(t *testing.T) {
	lex := lexicon.Default()
	ex := NewExtractor(lex)

	got := ex.Extract("I have 5 years of experience with Python and React")

	assert.Equal(t, 5, got.YearsExperience)
	assert.Contains(t, got.Skills, "Python")
	assert.Contains(t, got.Skills, "React")
	for _, skill := range got.Skills {
		assert.True(t, lex.Contains(skill), "extractor never invents skills outside the lexicon: %s", skill)
	}
}
