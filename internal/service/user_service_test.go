package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/directory"
	"github.com/sefazor/starclub-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCreateAndUpdateUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, models.CreateUserRequest{Name: "Anna", Email: "anna@example.com", Password: "secret1", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, models.TierBronze, user.Tier)

	_, err = svc.CreateUser(ctx, models.CreateUserRequest{Name: "Anna 2", Email: "ANNA@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, models.ErrConflict)

	inactive := models.StatusInactive
	updated, err := svc.UpdateUser(ctx, user.ID, models.AdminUpdateUserRequest{
		Name:   strPtr("Anna Lee"),
		Email:  strPtr("anna@example.com"),
		Status: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna Lee", updated.Name)
	assert.Equal(t, models.StatusInactive, updated.Status)
	assert.Equal(t, models.TierBronze, updated.Tier)

	other := seedUser(t, store, "brian@example.com", 0)
	_, err = svc.UpdateUser(ctx, other.ID, models.AdminUpdateUserRequest{Email: strPtr("anna@example.com")})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.UpdateUser(ctx, uuid.NewString(), models.AdminUpdateUserRequest{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfile(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "profile@example.com", 12)

	updated, err := svc.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{Name: "New Name", Phone: "555", FavoriteRestaurant: "Sushi Master"})
	require.NoError(t, err)
	assert.Equal(t, "Sushi Master", updated.FavoriteRestaurant)
	assert.Equal(t, 12, updated.TotalStars)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TierSilver, profile.Progress.Tier)
	assert.Equal(t, 13, profile.Progress.StarsRemaining)
	assert.Equal(t, "gold", profile.Progress.NextTier)
	assert.Empty(t, profile.Rewards)
}

func TestListUsersStatsAndReport(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	seedUser(t, store, "a@example.com", 0)
	seedUser(t, store, "b@example.com", 12)
	seedUser(t, store, "c@example.com", 60)

	page, err := svc.ListUsers(ctx, directory.Query{Sort: directory.FieldTotalStars, Dir: directory.Desc, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "c@example.com", page.Users[0].Email)

	_, err = svc.ListUsers(ctx, directory.Query{Tier: "diamond"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.UsersByTier[models.TierPlatinum])

	pdf, err := svc.UsersReport(ctx, directory.Query{Tier: "silver"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestDeleteUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, zap.NewNop())
	visits := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "gone@example.com", 9)
	restaurant := seedRestaurant(t, store)
	_, err := visits.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err = svc.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	held, err := store.Rewards.ListUserRewards(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, held)

	assert.ErrorIs(t, svc.DeleteUser(ctx, user.ID), models.ErrNotFound)
}

func TestReconcileCounters(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, zap.NewNop())
	visits := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "drift@example.com", 0)
	restaurant := seedRestaurant(t, store)
	at := time.Date(2024, 7, 4, 18, 0, 0, 0, time.UTC)
	visits.now = func() time.Time { return at }
	for _, stars := range []int{5, 6} {
		_, err := visits.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID, StarsEarned: intPtr(stars)})
		require.NoError(t, err)
	}

	// Simulate drift between the counters and the log.
	drifted, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	drifted.TotalStars, drifted.TotalVisits, drifted.Tier = 40, 30, models.TierGold
	require.NoError(t, store.Users.UpdateStanding(ctx, drifted))

	fixed, err := svc.ReconcileCounters(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fixed.TotalVisits)
	assert.Equal(t, 11, fixed.TotalStars)
	assert.Equal(t, models.TierSilver, fixed.Tier)
	assert.True(t, fixed.LastVisit.Equal(at))

	_, err = svc.ReconcileCounters(ctx, "bad")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.ReconcileCounters(ctx, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
