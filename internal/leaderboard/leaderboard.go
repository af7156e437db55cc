package leaderboard

import (
	"sort"

	"github.com/synapselink/backend/internal/db"
)

// Cache kinds, also used as Redis key suffixes.
const (
	KindSkills     = "skills"
	KindConnectors = "connectors"
)

// SkillRank is one row of the skill leaderboard.
type SkillRank struct {
	Skill            string `json:"skill"`
	EndorsementCount int    `json:"endorsement_count"`
}

// ConnectorRank is one row of the connector leaderboard.
type ConnectorRank struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ConnectionCount int    `json:"connection_count"`
}

// TallySkills counts endorsements per skill (exact, case-sensitive match)
// and ranks by count descending. The sort is stable, so skills tied on
// count keep first-encounter order and the output is deterministic for a
// given input order. Empty input yields an empty (non-nil) slice.
func TallySkills(endorsements []db.Endorsement) []SkillRank {
	ranks := make([]SkillRank, 0)
	index := make(map[string]int)

	for _, e := range endorsements {
		i, seen := index[e.Skill]
		if !seen {
			index[e.Skill] = len(ranks)
			ranks = append(ranks, SkillRank{Skill: e.Skill})
			i = len(ranks) - 1
		}
		ranks[i].EndorsementCount++
	}

	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].EndorsementCount > ranks[b].EndorsementCount
	})
	return ranks
}

// TallyConnectors counts accepted connections per user and ranks by count
// descending.
//
// Behavior:
//   - Only connections with status accepted count.
//   - Both endpoints of an edge are credited once each (undirected tally
//     over directed storage).
//   - Counts are joined to profiles by id; a missing profile gets the
//     "Unknown" placeholder rather than being dropped.
//   - Stable sort, same determinism guarantee as TallySkills.
func TallyConnectors(connections []db.Connection, profiles []db.Profile) []ConnectorRank {
	profilesByID := make(map[string]db.Profile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.ID] = p
	}

	ranks := make([]ConnectorRank, 0)
	index := make(map[string]int)
	credit := func(userID string) {
		i, seen := index[userID]
		if !seen {
			index[userID] = len(ranks)
			ranks = append(ranks, ConnectorRank{ID: userID, Name: "Unknown", Email: "Unknown"})
			i = len(ranks) - 1
			if p, ok := profilesByID[userID]; ok {
				ranks[i].Name = p.Name
				ranks[i].Email = p.Email
			}
		}
		ranks[i].ConnectionCount++
	}

	for _, c := range connections {
		if c.Status != db.StatusAccepted {
			continue
		}
		credit(c.FromUserID)
		credit(c.ToUserID)
	}

	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].ConnectionCount > ranks[b].ConnectionCount
	})
	return ranks
}
