package directory

import "github.com/sefazor/starclub-backend/internal/models"

type Stats struct {
	TotalUsers    int                 `json:"total_users"`
	ActiveUsers   int                 `json:"active_users"`
	TotalVisits   int                 `json:"total_visits"`
	TotalStars    int                 `json:"total_stars"`
	UsersByTier   map[models.Tier]int `json:"users_by_tier"`
	AdminAccounts int                 `json:"admin_accounts"`
}

// Summarize computes the dashboard header numbers.
func Summarize(users []models.User) Stats {
	s := Stats{
		TotalUsers: len(users),
		UsersByTier: map[models.Tier]int{
			models.TierBronze:   0,
			models.TierSilver:   0,
			models.TierGold:     0,
			models.TierPlatinum: 0,
		},
	}
	for _, u := range users {
		if u.Status == models.StatusActive {
			s.ActiveUsers++
		}
		if u.IsAdmin {
			s.AdminAccounts++
		}
		s.TotalVisits += u.TotalVisits
		s.TotalStars += u.TotalStars
		s.UsersByTier[u.Tier]++
	}
	return s
}
