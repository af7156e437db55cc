// Package search filters profiles by name or skills. The dataset is small
// enough to filter in memory on top of a full fetch.
package search

import (
	"strings"

	"github.com/synapselink/backend/internal/db"
)

// MaxResults caps every search response.
const MaxResults = 50

// Filter applies name and skill criteria to the given profiles.
//
//   - name: case-insensitive substring match against the profile name.
//   - skills: every requested skill must be present (AND semantics),
//     matched case-insensitively but exactly per skill.
//
// Both criteria apply when both are set. Result is capped at MaxResults.
func Filter(profiles []db.Profile, name string, skills []string) []db.Profile {
	nameLower := strings.ToLower(name)

	wanted := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			wanted = append(wanted, s)
		}
	}

	matched := make([]db.Profile, 0)
	for _, p := range profiles {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), nameLower) {
			continue
		}
		if len(wanted) > 0 && !hasAllSkills(p.Skills, wanted) {
			continue
		}
		matched = append(matched, p)
		if len(matched) == MaxResults {
			break
		}
	}
	return matched
}

func hasAllSkills(have []string, wanted []string) bool {
	set := make(map[string]bool, len(have))
	for _, s := range have {
		set[strings.ToLower(s)] = true
	}
	for _, w := range wanted {
		if !set[w] {
			return false
		}
	}
	return true
}
