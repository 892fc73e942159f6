// internal/app/features/results/ranking.go
package results

import (
	"sort"
	"strings"

	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	RegistrationID string `json:"registration_id,omitempty"`
	CollegeName    string `json:"college_name"`
	Points         int    `json:"points"`
}

// Rank orders scored submissions by points descending and assigns
// competition ranks: teams with equal points share a rank, and the
// team after a tie is placed by position, not by distinct-score count
// (90, 90, 80 ranks as 1, 1, 3).
func Rank(subs []models.Phase1Submission) []Entry {
	scored := make([]models.Phase1Submission, 0, len(subs))
	for _, s := range subs {
		if s.Scored() {
			scored = append(scored, s)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if *scored[i].Points != *scored[j].Points {
			return *scored[i].Points > *scored[j].Points
		}
		return scored[i].SubmittedAt.Before(scored[j].SubmittedAt)
	})

	entries := make([]Entry, len(scored))
	for i, s := range scored {
		rank := i + 1
		if i > 0 && *s.Points == entries[i-1].Points {
			rank = entries[i-1].Rank
		}
		entries[i] = Entry{
			Rank:        rank,
			TeamID:      s.ID,
			TeamName:    s.TeamName,
			CollegeName: s.CollegeName,
			Points:      *s.Points,
		}
	}
	return entries
}

// Filter returns the entries whose team name, registration ID, or
// college contains the query, case-insensitively. Ranks are kept as
// assigned over the full field; filtering never renumbers.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.TeamName), q) ||
			strings.Contains(strings.ToLower(e.RegistrationID), q) ||
			strings.Contains(strings.ToLower(e.CollegeName), q) {
			out = append(out, e)
		}
	}
	return out
}
