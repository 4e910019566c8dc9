package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sefazor/starclub-backend/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	return translate("user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) CreateInBatches(ctx context.Context, users []models.User, size int) error {
	for i := range users {
		users[i].Email = normalizeEmail(users[i].Email)
	}
	return translate("user", r.db.WithContext(ctx).CreateInBatches(users, size).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate("user", err)
	}
	return &user, nil
}

// GetByIDForUpdate locks the user row until the surrounding transaction
// ends. Callers must be running inside Store.WithinTransaction.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate("user", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translate("user", err)
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	return count > 0, translate("user", err)
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&users).Error
	return users, translate("user", err)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translate("user", err)
}

// UpdateFields writes the given columns. The caller decides which columns
// are allowed; counters and tier go through UpdateStanding only.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	if email, ok := fields["email"].(string); ok {
		fields["email"] = normalizeEmail(email)
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate("user", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, translate("user", gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, id)
}

// UpdateStanding persists the visit-derived fields of a user.
func (r *UserRepository) UpdateStanding(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"total_visits": user.TotalVisits,
		"total_stars":  user.TotalStars,
		"tier":         user.Tier,
		"last_visit":   user.LastVisit,
	}).Error
	return translate("user", err)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate("user", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("user", gorm.ErrRecordNotFound)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
