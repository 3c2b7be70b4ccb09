// Package extraction turns raw resume text into a structured feature set of
// canonical skills and years of experience.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/lexicon"
	"github.com/jonathan/resume-matcher/internal/types"
)

// experiencePatterns are tried in order; the first pattern that matches wins,
// even when a later pattern would yield a larger value. Changing this to
// max-of-all-matches would silently shift scores against persisted history.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s+years?\s+of\s+experience`),
	regexp.MustCompile(`(?i)experience\s+of\s+(\d+)\s+years?`),
	regexp.MustCompile(`(?i)worked\s+for\s+(\d+)\s+years?`),
	regexp.MustCompile(`(?i)(\d+)\+?\s+years?\s+in\b`),
}

// Extractor detects lexicon skills and experience statements in resume text.
// It precompiles one boundary-matched pattern per lexicon entry and is safe
// for concurrent use.
type Extractor struct {
	lex      *lexicon.Lexicon
	patterns []*regexp.Regexp
}

// NewExtractor builds an extractor over the given lexicon.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	entries := lex.Entries()
	patterns := make([]*regexp.Regexp, len(entries))
	for i, entry := range entries {
		patterns[i] = skillPattern(entry)
	}
	return &Extractor{lex: lex, patterns: patterns}
}

// Extract parses resume text into features. It is a pure function of its
// input and never fails: empty or garbled text yields an empty skill set and
// zero years of experience.
func (e *Extractor) Extract(text string) types.ResumeFeatures {
	return types.ResumeFeatures{
		RawText:         text,
		Skills:          e.extractSkills(text),
		YearsExperience: extractExperience(text),
	}
}

// extractSkills returns the lexicon entries present in the text as complete
// tokens, in lexicon order.
func (e *Extractor) extractSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	entries := e.lex.Entries()
	found := make([]string, 0)
	for i, pattern := range e.patterns {
		if pattern.MatchString(text) {
			found = append(found, entries[i])
		}
	}
	return found
}

// extractExperience applies the experience patterns in order and returns the
// integer from the first one that matches, or 0 when none do.
func extractExperience(text string) int {
	for _, pattern := range experiencePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return years
	}
	return 0
}

// skillPattern builds a whole-token pattern for one lexicon entry. Each entry
// is checked independently with its own boundary: "Java" must not match
// inside "JavaScript", and "HTML" must not match inside "HTML5". Boundaries
// are non-alphanumeric so punctuated entries like "C++" and "CI/CD" still
// match at sentence edges. Whitespace inside multi-word entries is flexible.
func skillPattern(entry string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(entry)
	quoted = strings.ReplaceAll(quoted, ` `, `\s+`)
	return regexp.MustCompile(`(?i)(?:^|[^0-9A-Za-z])` + quoted + `(?:$|[^0-9A-Za-z])`)
}
