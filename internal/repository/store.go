package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/models"
)

// Store bundles the repositories bound to one connection or transaction.
type Store struct {
	db          *gorm.DB
	Users       *UserRepository
	Restaurants *RestaurantRepository
	Visits      *VisitRepository
	Rewards     *RewardRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Users:       NewUserRepository(db),
		Restaurants: NewRestaurantRepository(db),
		Visits:      NewVisitRepository(db),
		Rewards:     NewRewardRepository(db),
	}
}

// WithinTransaction runs fn against a Store bound to a single transaction.
// Returning an error from fn rolls everything back; the error is passed
// through unchanged.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx *Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewStore(tx))
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil && errors.Is(err, fnErr) {
		return fnErr
	}
	return translate("transaction", err)
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return translate("database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Join(models.ErrStorageUnavailable, err)
	}
	return nil
}
