package directory

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/starclub-backend/internal/models"
)

func sampleUsers() []models.User {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.User{
		{ID: "1", Name: "Mary Smith", Email: "mary.smith@gmail.com", TotalStars: 12, TotalVisits: 8, Tier: models.TierSilver, Status: models.StatusActive, JoinDate: day.AddDate(0, 2, 0)},
		{ID: "2", Name: "John Sushi", Email: "j.sushi@yahoo.com", TotalStars: 3, TotalVisits: 3, Tier: models.TierBronze, Status: models.StatusInactive, JoinDate: day},
		{ID: "3", Name: "Anna Lee", Email: "annalee@sushi.com", TotalStars: 60, TotalVisits: 41, Tier: models.TierPlatinum, Status: models.StatusActive, JoinDate: day.AddDate(0, 1, 0)},
		{ID: "4", Name: "Brian King", Email: "b.king@outlook.com", TotalStars: 30, TotalVisits: 20, Tier: models.TierGold, Status: models.StatusActive, JoinDate: day.AddDate(0, 3, 0)},
		{ID: "5", Name: "Amy Price", Email: "amy@zoho.com", TotalStars: 12, TotalVisits: 11, Tier: models.TierSilver, Status: models.StatusInactive, JoinDate: day.AddDate(0, 4, 0)},
	}
}

func ids(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	users := sampleUsers()

	assert.Equal(t, ids(users), ids(Search(users, "")))
	assert.Equal(t, []string{"2", "3"}, ids(Search(users, "SUSHI")))
	assert.Equal(t, []string{"1"}, ids(Search(users, "mary")))
	assert.Empty(t, Search(users, "nobody"))
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	users := sampleUsers()
	out := Search(users, "")
	out[0].Name = "changed"
	assert.Equal(t, "Mary Smith", users[0].Name)
}

func TestFilterByStatus(t *testing.T) {
	users := sampleUsers()

	got, err := FilterByStatus(users, "all")
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = FilterByStatus(users, "inactive")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "5"}, ids(got))

	_, err = FilterByStatus(users, "banned")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestFilterByTier(t *testing.T) {
	users := sampleUsers()

	got, err := FilterByTier(users, "all")
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = FilterByTier(users, "silver")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "5"}, ids(got))

	_, err = FilterByTier(users, "diamond")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSort(t *testing.T) {
	users := sampleUsers()

	tests := []struct {
		name     string
		field    SortField
		dir      Direction
		expected []string
	}{
		{"name asc", FieldName, Asc, []string{"5", "3", "4", "2", "1"}},
		{"name desc", FieldName, Desc, []string{"1", "2", "4", "3", "5"}},
		{"stars asc keeps input order on ties", FieldTotalStars, Asc, []string{"2", "1", "5", "4", "3"}},
		{"stars desc keeps input order on ties", FieldTotalStars, Desc, []string{"3", "4", "1", "5", "2"}},
		{"tier asc by rank", FieldTier, Asc, []string{"2", "1", "5", "4", "3"}},
		{"join date desc", FieldJoinDate, Desc, []string{"5", "4", "1", "3", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sort(users, tt.field, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(users), "input must stay untouched")
}

func TestSortRejectsUnknownFieldAndDirection(t *testing.T) {
	_, err := Sort(sampleUsers(), "password", Asc)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = Sort(sampleUsers(), FieldName, "sideways")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPaginate(t *testing.T) {
	users := make([]models.User, 23)
	for i := range users {
		users[i] = models.User{ID: fmt.Sprintf("user-%d", i+1)}
	}

	expected := map[int]int{1: 10, 2: 10, 3: 3, 4: 0}
	for page, size := range expected {
		p, err := Paginate(users, page, 10)
		require.NoError(t, err)
		assert.Len(t, p.Users, size, "page %d", page)
		assert.Equal(t, 23, p.Total)
		assert.Equal(t, 3, p.TotalPages)
	}

	p, _ := Paginate(users, 3, 10)
	assert.Equal(t, "user-21", p.Users[0].ID)

	p, err := Paginate(users, math.MaxInt64/5, 10)
	require.NoError(t, err)
	assert.Empty(t, p.Users)
	assert.Equal(t, 3, p.TotalPages)

	p, err = Paginate(users, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, p.Users, 23)

	_, err = Paginate(users, 0, 10)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = Paginate(users, 1, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPaginateEmpty(t *testing.T) {
	p, err := Paginate(nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Users)
}

func TestApplyComposesStagesInOrder(t *testing.T) {
	users := sampleUsers()

	p, err := Apply(users, Query{Search: "s", Status: "active", Sort: FieldTotalStars, Dir: Desc})
	require.NoError(t, err)
	// "s" matches 1, 2 and 3 by name or email; the status filter drops 2.
	assert.Equal(t, []string{"3", "1"}, ids(p.Users))
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p, err = Apply(users, Query{Tier: "silver", PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(p.Users))
	assert.Equal(t, 2, p.TotalPages)
}

func TestApplyDefaults(t *testing.T) {
	p, err := Apply(sampleUsers(), Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "3", "4", "2", "1"}, ids(p.Users))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleUsers())

	assert.Equal(t, 5, s.TotalUsers)
	assert.Equal(t, 3, s.ActiveUsers)
	assert.Equal(t, 83, s.TotalVisits)
	assert.Equal(t, 117, s.TotalStars)
	assert.Equal(t, 1, s.UsersByTier[models.TierBronze])
	assert.Equal(t, 2, s.UsersByTier[models.TierSilver])
	assert.Equal(t, 1, s.UsersByTier[models.TierGold])
	assert.Equal(t, 1, s.UsersByTier[models.TierPlatinum])
}
