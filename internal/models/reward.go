package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reward struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"not null"`
	StarsRequired int       `json:"stars_required" gorm:"not null"`
	Tier          Tier      `json:"tier" gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// UserReward records that a user has unlocked a reward.
type UserReward struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string     `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_reward"`
	RewardID     string     `json:"reward_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_reward"`
	Reward       *Reward    `json:"reward,omitempty" gorm:"foreignKey:RewardID"`
	DateEarned   time.Time  `json:"date_earned"`
	IsRedeemed   bool       `json:"is_redeemed" gorm:"not null;default:false"`
	RedeemedDate *time.Time `json:"redeemed_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (ur *UserReward) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == "" {
		ur.ID = uuid.NewString()
	}
	return nil
}

// DefaultRewards is the catalog upserted on migration.
var DefaultRewards = []Reward{
	{Name: "Free Beverage", Description: "Enjoy a complimentary drink of your choice with any purchase.", StarsRequired: 10, Tier: TierBronze},
	{Name: "10% Discount", Description: "Receive 10% off your entire order.", StarsRequired: 20, Tier: TierSilver},
	{Name: "Free Appetizer", Description: "Choose any appetizer from our menu, on the house!", StarsRequired: 30, Tier: TierGold},
	{Name: "20% Discount", Description: "Enjoy 20% off your entire order.", StarsRequired: 40, Tier: TierGold},
	{Name: "Free Entrée", Description: "Select any main dish from our menu for free with any purchase.", StarsRequired: 50, Tier: TierPlatinum},
}
