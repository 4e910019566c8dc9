package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sefazor/starclub-backend/internal/loyalty"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
)

type RewardService struct {
	store *repository.Store
	now   func() time.Time
}

func NewRewardService(store *repository.Store) *RewardService {
	return &RewardService{store: store, now: time.Now}
}

func (s *RewardService) Catalog(ctx context.Context) ([]models.Reward, error) {
	return s.store.Rewards.GetAll(ctx)
}

func (s *RewardService) UserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	return s.store.Rewards.ListUserRewards(ctx, userID)
}

// Redeem marks a granted reward as used. Redeeming twice is a conflict.
func (s *RewardService) Redeem(ctx context.Context, userID, userRewardID string) (*models.UserReward, error) {
	if _, err := uuid.Parse(userRewardID); err != nil {
		return nil, fmt.Errorf("malformed reward id: %w", models.ErrInvalidInput)
	}
	if err := s.store.Rewards.MarkRedeemed(ctx, userID, userRewardID, s.now()); err != nil {
		return nil, err
	}
	return s.store.Rewards.GetUserReward(ctx, userID, userRewardID)
}

// grantUnlocked gives the user every catalog reward their stars reach and
// they do not hold yet. Must run inside the caller's transaction.
func grantUnlocked(ctx context.Context, tx *repository.Store, user *models.User, at time.Time) ([]models.UserReward, error) {
	catalog, err := tx.Rewards.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	granted, err := tx.Rewards.GrantedRewardIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	unlocked := loyalty.UnlockedRewards(user.TotalStars, catalog, granted)
	grants := make([]models.UserReward, 0, len(unlocked))
	for _, r := range unlocked {
		grants = append(grants, models.UserReward{UserID: user.ID, RewardID: r.ID, DateEarned: at})
	}
	if err := tx.Rewards.Grant(ctx, grants); err != nil {
		return nil, err
	}
	return grants, nil
}
