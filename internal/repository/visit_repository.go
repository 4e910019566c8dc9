package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/models"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, visit *models.Visit) error {
	return translate("visit", r.db.WithContext(ctx).Create(visit).Error)
}

func (r *VisitRepository) CreateInBatches(ctx context.Context, visits []models.Visit, size int) error {
	if len(visits) == 0 {
		return nil
	}
	return translate("visit", r.db.WithContext(ctx).CreateInBatches(visits, size).Error)
}

// ListByUser returns the user's visits, newest first, with the restaurant
// preloaded.
func (r *VisitRepository) ListByUser(ctx context.Context, userID string) ([]models.Visit, error) {
	var visits []models.Visit
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&visits).Error
	return visits, translate("visit", err)
}

type VisitTotals struct {
	Visits    int
	Stars     int
	LastVisit *models.Visit
}

// Totals aggregates the visit log of one user.
func (r *VisitRepository) Totals(ctx context.Context, userID string) (VisitTotals, error) {
	var row struct {
		Visits int
		Stars  int
	}
	err := r.db.WithContext(ctx).Model(&models.Visit{}).
		Select("COUNT(*) AS visits, COALESCE(SUM(stars_earned), 0) AS stars").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return VisitTotals{}, translate("visit", err)
	}

	totals := VisitTotals{Visits: row.Visits, Stars: row.Stars}
	if row.Visits == 0 {
		return totals, nil
	}

	var last models.Visit
	err = r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").First(&last).Error
	if err != nil {
		return VisitTotals{}, translate("visit", err)
	}
	totals.LastVisit = &last
	return totals, nil
}

func (r *VisitRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Visit{}).Count(&count).Error
	return count, translate("visit", err)
}
