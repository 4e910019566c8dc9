package loyalty

import (
	"sort"

	"github.com/sefazor/starclub-backend/internal/models"
)

// UnlockedRewards returns the catalog entries reachable with stars that are
// not already in granted (keyed by reward id), cheapest first.
func UnlockedRewards(stars int, catalog []models.Reward, granted map[string]bool) []models.Reward {
	var out []models.Reward
	for _, r := range catalog {
		if r.StarsRequired <= stars && !granted[r.ID] {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StarsRequired < out[j].StarsRequired
	})
	return out
}
