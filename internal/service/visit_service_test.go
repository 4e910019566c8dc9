package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/loyalty"
	"github.com/sefazor/starclub-backend/internal/models"
)

func TestRecordVisitPromotesBronzeToSilver(t *testing.T) {
	store := newTestStore(t)
	mailer := &fakeMailer{}
	publisher := &fakePublisher{}
	svc := NewVisitService(store, mailer, publisher, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "nine@example.com", 9)
	restaurant := seedRestaurant(t, store)

	resp, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID})
	require.NoError(t, err)

	assert.True(t, resp.TierChanged)
	assert.Equal(t, 10, resp.User.TotalStars)
	assert.Equal(t, 10, resp.User.TotalVisits)
	assert.Equal(t, models.TierSilver, resp.User.Tier)
	assert.Equal(t, models.DefaultStarsPerVisit, resp.Visit.StarsEarned)
	require.NotNil(t, resp.Visit.Restaurant)
	assert.Equal(t, restaurant.Name, resp.Visit.Restaurant.Name)

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TierSilver, stored.Tier)
	assert.False(t, stored.LastVisit.IsZero())

	rewards, err := store.Rewards.ListUserRewards(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, "Free Beverage", rewards[0].Reward.Name)

	assert.Eventually(t, func() bool {
		_, upgrades := mailer.sent()
		return len(upgrades) == 1 && upgrades[0] == "nine@example.com:silver"
	}, time.Second, 10*time.Millisecond)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, 10, publisher.events[0].TotalStars)
	assert.Equal(t, resp.Visit.ID, publisher.events[0].VisitID)
}

func TestRecordVisitKeepsTierInvariant(t *testing.T) {
	store := newTestStore(t)
	svc := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "steps@example.com", 0)
	restaurant := seedRestaurant(t, store)

	for _, stars := range []int{3, 7, 14, 1, 25} {
		resp, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID, StarsEarned: intPtr(stars)})
		require.NoError(t, err)
		want, err := loyalty.TierForStars(resp.User.TotalStars)
		require.NoError(t, err)
		assert.Equal(t, want, resp.User.Tier)
	}

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.TotalStars)
	assert.Equal(t, 5, stored.TotalVisits)
	assert.Equal(t, models.TierPlatinum, stored.Tier)

	held, err := store.Rewards.ListUserRewards(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, held, len(models.DefaultRewards))
}

func TestRecordVisitRejectsBadStars(t *testing.T) {
	store := newTestStore(t)
	svc := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "zero@example.com", 4)
	restaurant := seedRestaurant(t, store)

	for _, stars := range []int{0, -3} {
		_, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID, StarsEarned: intPtr(stars)})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.TotalStars)
	assert.Equal(t, 4, stored.TotalVisits)

	visits, err := store.Visits.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestRecordVisitUnknownRestaurantRollsBack(t *testing.T) {
	store := newTestStore(t)
	svc := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "lost@example.com", 9)

	_, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: uuid.NewString()})
	assert.ErrorIs(t, err, models.ErrNotFound)

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.TotalStars)
	assert.Equal(t, models.TierBronze, stored.Tier)
}

func TestRecordVisitUnknownUserAndMalformedIDs(t *testing.T) {
	store := newTestStore(t)
	svc := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	restaurant := seedRestaurant(t, store)

	_, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: uuid.NewString(), RestaurantID: restaurant.ID})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: "42", RestaurantID: restaurant.ID})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: uuid.NewString(), RestaurantID: "nope"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRecordVisitConcurrentForSameUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "busy@example.com", 0)
	restaurant := seedRestaurant(t, store)

	const n = 12
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, n, stored.TotalVisits)
	assert.Equal(t, n, stored.TotalStars)
	assert.Equal(t, models.TierSilver, stored.Tier)
}

func TestListVisits(t *testing.T) {
	store := newTestStore(t)
	svc := NewVisitService(store, nil, nil, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, store, "list@example.com", 0)
	restaurant := seedRestaurant(t, store)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		_, err := svc.RecordVisit(ctx, models.RecordVisitRequest{UserID: user.ID, RestaurantID: restaurant.ID, StarsEarned: intPtr(i + 1)})
		require.NoError(t, err)
	}

	visits, err := svc.ListVisits(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, visits, 3)
	assert.Equal(t, 3, visits[0].StarsEarned)
	assert.Equal(t, 1, visits[2].StarsEarned)

	_, err = svc.ListVisits(ctx, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
