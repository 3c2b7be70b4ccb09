// Package lexicon provides the canonical skill reference set used for resume
// feature extraction. The lexicon is immutable process-wide state: it is built
// once at startup and injected into consumers rather than referenced globally.
package lexicon

import "strings"

// defaultSkills is the built-in canonical skill list. Entries are grouped by
// rough domain; order is significant because extraction results iterate in
// lexicon order.
var defaultSkills = []string{
	// Programming & technical
	"Python", "Java", "C++", "SQL", "JavaScript", "TypeScript",
	"HTML", "HTML5", "CSS", "CSS3", "React", "ReactJS", "NodeJS", "ExpressJS",
	"Django", "Flask", "RESTful APIs", "GraphQL",

	// Cloud & DevOps
	"AWS", "Docker", "Kubernetes", "Git", "Linux", "DevOps",
	"Cloud Computing", "CI/CD",

	// Data science & ML
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch",
	"Data Analysis", "Data Engineering", "Big Data", "Hadoop", "Spark",
	"ETL", "Artificial Intelligence", "Natural Language Processing",

	// Databases
	"MongoDB", "PostgreSQL", "MySQL", "NoSQL",

	// Business & management
	"Project Management", "Business Analysis", "Risk Management",
	"Financial Analysis", "Budgeting", "Accounting", "Quality Assurance",
	"Testing", "Agile", "Scrum",

	// Design & analytics tooling
	"User Experience", "UI/UX Design", "Graphic Design", "Figma",
	"Sketch", "Adobe XD", "Canva", "Adobe Creative Suite", "Tailwind CSS",
	"TailwindCSS", "Power BI", "Tableau", "Looker", "QlikView",

	// Marketing & communication
	"Digital Marketing", "SEO", "Content Creation", "Social Media Marketing",
	"Email Marketing", "Salesforce", "CRM", "Google Analytics", "Google Ads",
	"Facebook Ads", "Instagram Ads",

	// Soft skills
	"Communication", "Leadership", "Problem Solving", "Time Management",
	"Teamwork", "Adaptability", "Interpersonal Skills", "Public Speaking",
	"Presentation Skills", "Critical Thinking", "Negotiation", "Networking",
	"Research Skills",

	// Productivity tools
	"GitHub", "JIRA", "Trello", "Slack", "Zoom", "Microsoft Teams", "Notion",
	"PowerPoint", "Word", "Excel",

	// Languages
	"English", "Spanish", "French", "German", "Mandarin", "Japanese",
	"Korean", "Russian", "Turkish", "Arabic",
}

// Lexicon is an immutable, ordered set of canonical skill names.
type Lexicon struct {
	entries []string
}

// Default returns a lexicon built from the built-in skill list.
func Default() *Lexicon {
	return New(defaultSkills)
}

// New builds a lexicon from the given entries. Entries are trimmed and
// deduplicated case-insensitively; first occurrence wins and original order
// and casing are preserved.
func New(entries []string) *Lexicon {
	deduped := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		trimmed := strings.TrimSpace(e)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, trimmed)
	}
	return &Lexicon{entries: deduped}
}

// Entries returns a copy of the lexicon entries in stable order.
func (l *Lexicon) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Contains reports whether the lexicon holds the skill, compared
// case-insensitively.
func (l *Lexicon) Contains(skill string) bool {
	key := strings.ToLower(strings.TrimSpace(skill))
	for _, e := range l.entries {
		if strings.ToLower(e) == key {
			return true
		}
	}
	return false
}

// Merge returns a new lexicon extended with the extra entries, typically
// skills harvested from the job store's required-skills columns. The receiver
// is not modified; duplicates against existing entries are dropped.
func (l *Lexicon) Merge(extra []string) *Lexicon {
	combined := make([]string, 0, len(l.entries)+len(extra))
	combined = append(combined, l.entries...)
	combined = append(combined, extra...)
	return New(combined)
}
