package scoring

import "strings"

// Advisory fragments, concatenated in fixed precedence. Dashboards group
// historical suggestions by exact text, so the wording and order are part of
// the contract.
const (
	// SuggestionUpskill applies when skill match is below 50.
	SuggestionUpskill = "Consider upskilling in the role's core requirements to strengthen your profile."
	// SuggestionMissingPrefix names up to the first three missing skills.
	SuggestionMissingPrefix = "Focus on learning: "
	// SuggestionExperience applies when experience match is below 70.
	SuggestionExperience = "Building more hands-on experience through projects or freelance work would improve your fit."
	// SuggestionStrongFit applies when both sub-scores are at least 70.
	SuggestionStrongFit = "Strong profile for this role. Emphasize your matched skills prominently in your application."
	// SuggestionFallback is emitted when no other fragment applies.
	SuggestionFallback = "Highlight transferable skills or gain experience in missing areas."
)

// maxNamedMissingSkills bounds how many missing skills the advisory names.
const maxNamedMissingSkills = 3

// buildSuggestions assembles the advisory text. Each fragment is appended
// only when its condition holds, space-joined, in fixed precedence:
// upskilling, missing skills, experience, positive reinforcement.
func buildSuggestions(skillPct, expPct int, missing []string) string {
	parts := make([]string, 0, 4)

	if skillPct < 50 {
		parts = append(parts, SuggestionUpskill)
	}
	if len(missing) > 0 {
		named := missing
		if len(named) > maxNamedMissingSkills {
			named = named[:maxNamedMissingSkills]
		}
		parts = append(parts, SuggestionMissingPrefix+strings.Join(named, ", ")+".")
	}
	if expPct < 70 {
		parts = append(parts, SuggestionExperience)
	}
	if skillPct >= 70 && expPct >= 70 {
		parts = append(parts, SuggestionStrongFit)
	}

	if len(parts) == 0 {
		return SuggestionFallback
	}
	return strings.Join(parts, " ")
}
