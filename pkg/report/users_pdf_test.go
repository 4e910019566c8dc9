package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/starclub-backend/internal/models"
)

func TestBuildUsersPDF(t *testing.T) {
	users := make([]models.User, 60)
	for i := range users {
		users[i] = models.User{
			Name:       fmt.Sprintf("Member %d", i),
			Email:      fmt.Sprintf("member%d@example.com", i),
			Tier:       models.TierSilver,
			Status:     models.StatusActive,
			TotalStars: 12,
		}
	}
	users[0].LastVisit = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	data, err := BuildUsersPDF(UserReport{GeneratedAt: time.Now(), Filter: "tier=silver", Total: 60, Users: users})
	require.NoError(t, err)
	assert.True(t, len(data) > 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}
