package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Filter value accepted by the directory for both status and tier.
const FilterAll = "all"

// User is an account holder. Tier is a cached function of TotalStars and is
// only ever written by the visit recorder (and set to bronze on creation).
type User struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name               string     `json:"name" gorm:"not null"`
	Email              string     `json:"email" gorm:"uniqueIndex;not null"`
	Password           string     `json:"-"`
	Phone              string     `json:"phone" gorm:"not null;default:''"`
	JoinDate           time.Time  `json:"join_date"`
	LastVisit          time.Time  `json:"last_visit"`
	TotalVisits        int        `json:"total_visits" gorm:"not null;default:0"`
	TotalStars         int        `json:"total_stars" gorm:"not null;default:0"`
	FavoriteRestaurant string     `json:"favorite_restaurant" gorm:"not null;default:''"`
	Status             UserStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	Tier               Tier       `json:"tier" gorm:"type:varchar(16);not null;default:'bronze';index"`
	IsAdmin            bool       `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Principal is the authenticated identity handed over by the session layer.
type Principal struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type UpdateProfileRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	Phone              string `json:"phone" validate:"max=32"`
	FavoriteRestaurant string `json:"favorite_restaurant" validate:"max=120"`
}

type CreateUserRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6"`
	Phone              string `json:"phone" validate:"max=32"`
	FavoriteRestaurant string `json:"favorite_restaurant" validate:"max=120"`
	IsAdmin            bool   `json:"is_admin"`
}

// AdminUpdateUserRequest deliberately has no tier or counter fields.
type AdminUpdateUserRequest struct {
	Name               *string     `json:"name" validate:"omitempty,max=120"`
	Email              *string     `json:"email" validate:"omitempty,email"`
	Phone              *string     `json:"phone" validate:"omitempty,max=32"`
	FavoriteRestaurant *string     `json:"favorite_restaurant" validate:"omitempty,max=120"`
	Status             *UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	IsAdmin            *bool       `json:"is_admin"`
}

// UserListRequest carries the admin dashboard query string.
type UserListRequest struct {
	Search   string `query:"q" validate:"max=120"`
	Status   string `query:"status" validate:"omitempty,status_filter"`
	Tier     string `query:"tier" validate:"omitempty,tier_filter"`
	Sort     string `query:"sort" validate:"omitempty,sort_field"`
	Dir      string `query:"dir" validate:"omitempty,sort_dir"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type TierProgress struct {
	Tier           Tier    `json:"tier"`
	TotalStars     int     `json:"total_stars"`
	Fraction       float64 `json:"fraction"`
	StarsRemaining int     `json:"stars_remaining"`
	NextTier       string  `json:"next_tier"`
}

type ProfileResponse struct {
	User     User         `json:"user"`
	Progress TierProgress `json:"progress"`
	Rewards  []UserReward `json:"rewards"`
}
