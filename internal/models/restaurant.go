package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Image       string    `json:"image" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=120"`
	Description string `json:"description" form:"description" validate:"required,max=1000"`
	Image       string `json:"image" form:"image" validate:"omitempty,url"`
	Category    string `json:"category" form:"category" validate:"required,max=60"`
}
