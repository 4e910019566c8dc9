package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/models"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return translate("restaurant", r.db.WithContext(ctx).Create(restaurant).Error)
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, translate("restaurant", err)
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Order("name ASC").Find(&restaurants).Error
	return restaurants, translate("restaurant", err)
}

func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Count(&count).Error
	return count, translate("restaurant", err)
}
