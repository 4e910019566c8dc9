package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/models"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) GetAll(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.db.WithContext(ctx).Order("stars_required ASC").Find(&rewards).Error
	return rewards, translate("reward", err)
}

func (r *RewardRepository) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	var rewards []models.UserReward
	err := r.db.WithContext(ctx).
		Preload("Reward").
		Where("user_id = ?", userID).
		Order("date_earned ASC").
		Find(&rewards).Error
	return rewards, translate("user reward", err)
}

// GrantedRewardIDs returns the set of reward ids the user already holds.
func (r *RewardRepository) GrantedRewardIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.UserReward{}).Where("user_id = ?", userID).Pluck("reward_id", &ids).Error
	if err != nil {
		return nil, translate("user reward", err)
	}
	granted := make(map[string]bool, len(ids))
	for _, id := range ids {
		granted[id] = true
	}
	return granted, nil
}

func (r *RewardRepository) Grant(ctx context.Context, grants []models.UserReward) error {
	if len(grants) == 0 {
		return nil
	}
	return translate("user reward", r.db.WithContext(ctx).Create(&grants).Error)
}

func (r *RewardRepository) GetUserReward(ctx context.Context, userID, userRewardID string) (*models.UserReward, error) {
	var ur models.UserReward
	err := r.db.WithContext(ctx).Preload("Reward").
		Where("id = ? AND user_id = ?", userRewardID, userID).
		First(&ur).Error
	if err != nil {
		return nil, translate("user reward", err)
	}
	return &ur, nil
}

// MarkRedeemed flips is_redeemed once. A second call reports a conflict.
func (r *RewardRepository) MarkRedeemed(ctx context.Context, userID, userRewardID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.UserReward{}).
		Where("id = ? AND user_id = ? AND is_redeemed = ?", userRewardID, userID, false).
		Updates(map[string]any{"is_redeemed": true, "redeemed_date": at})
	if res.Error != nil {
		return translate("user reward", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetUserReward(ctx, userID, userRewardID); err != nil {
			return err
		}
		return translate("user reward", gorm.ErrDuplicatedKey)
	}
	return nil
}

func (r *RewardRepository) DeleteUserRewards(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserReward{}).Error
	return translate("user reward", err)
}
