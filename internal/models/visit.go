package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultStarsPerVisit = 1

// Visit is an append-only fact; rows are never updated.
type Visit struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string      `json:"user_id" gorm:"type:varchar(36);not null;index"`
	RestaurantID string      `json:"restaurant_id" gorm:"type:varchar(36);not null;index"`
	Restaurant   *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Date         time.Time   `json:"date" gorm:"not null;index"`
	StarsEarned  int         `json:"stars_earned" gorm:"not null;default:1"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type RecordVisitRequest struct {
	UserID       string `json:"user_id" validate:"required,uuid"`
	RestaurantID string `json:"restaurant_id" validate:"required,uuid"`
	StarsEarned  *int   `json:"stars_earned" validate:"omitempty,min=1"`
}

type RecordVisitResponse struct {
	Visit       Visit `json:"visit"`
	User        User  `json:"user"`
	TierChanged bool  `json:"tier_changed"`
}

// VisitEvent is published to the broker after a visit commits.
type VisitEvent struct {
	VisitID      string    `json:"visit_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	StarsEarned  int       `json:"stars_earned"`
	TotalStars   int       `json:"total_stars"`
	Tier         Tier      `json:"tier"`
	Date         time.Time `json:"date"`
}
