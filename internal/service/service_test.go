package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/pkg/database"
)

type fakeMailer struct {
	mu       sync.Mutex
	welcome  []string
	upgrades []string
}

func (m *fakeMailer) SendWelcomeEmail(email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, email)
	return nil
}

func (m *fakeMailer) SendTierUpgradeEmail(email, _, tier string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upgrades = append(m.upgrades, email+":"+tier)
	return nil
}

func (m *fakeMailer) sent() (welcome, upgrades []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.welcome...), append([]string(nil), m.upgrades...)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.VisitEvent
}

func (p *fakePublisher) PublishJSON(_ context.Context, _ string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, v.(models.VisitEvent))
	return nil
}

type fakeStorage struct {
	keys    []string
	deleted []string
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeStorage) Upload(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.test/" + key, nil
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver: database.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewStore(db)
}

func seedUser(t *testing.T, store *repository.Store, email string, stars int) *models.User {
	t.Helper()
	tier := models.TierBronze
	switch {
	case stars >= 50:
		tier = models.TierPlatinum
	case stars >= 25:
		tier = models.TierGold
	case stars >= 10:
		tier = models.TierSilver
	}
	u := &models.User{
		Name:        "Member " + email,
		Email:       email,
		TotalStars:  stars,
		TotalVisits: stars,
		Tier:        tier,
		Status:      models.StatusActive,
		JoinDate:    time.Now(),
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func seedRestaurant(t *testing.T, store *repository.Store) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: "Pasta Paradise", Description: "Handmade pasta", Image: "https://img.test/p.jpg", Category: "Italian"}
	require.NoError(t, store.Restaurants.Create(context.Background(), r))
	return r
}

func intPtr(v int) *int { return &v }
