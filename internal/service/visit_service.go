package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/loyalty"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/pkg/mq"
)

const publishTimeout = 5 * time.Second

type VisitService struct {
	store     *repository.Store
	mailer    Mailer
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewVisitService(store *repository.Store, mailer Mailer, publisher EventPublisher, logger *zap.Logger) *VisitService {
	return &VisitService{
		store:     store,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger.Named("visits"),
		now:       time.Now,
	}
}

// RecordVisit appends a visit and updates the user's counters, tier and
// rewards in one transaction. The user row stays locked for the duration,
// so concurrent visits for the same user apply one after another.
func (s *VisitService) RecordVisit(ctx context.Context, req models.RecordVisitRequest) (*models.RecordVisitResponse, error) {
	stars := models.DefaultStarsPerVisit
	if req.StarsEarned != nil {
		stars = *req.StarsEarned
	}
	if stars < 1 {
		return nil, fmt.Errorf("stars earned must be at least 1, got %d: %w", stars, models.ErrInvalidInput)
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, fmt.Errorf("malformed user id: %w", models.ErrInvalidInput)
	}
	if _, err := uuid.Parse(req.RestaurantID); err != nil {
		return nil, fmt.Errorf("malformed restaurant id: %w", models.ErrInvalidInput)
	}

	var (
		user     *models.User
		visit    *models.Visit
		previous models.Tier
		granted  []models.UserReward
	)
	err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
		var err error
		if user, err = tx.Users.GetByIDForUpdate(ctx, req.UserID); err != nil {
			return err
		}
		restaurant, err := tx.Restaurants.GetByID(ctx, req.RestaurantID)
		if err != nil {
			return err
		}

		now := s.now()
		visit = &models.Visit{
			UserID:       user.ID,
			RestaurantID: restaurant.ID,
			Date:         now,
			StarsEarned:  stars,
		}
		if err := tx.Visits.Create(ctx, visit); err != nil {
			return err
		}
		visit.Restaurant = restaurant

		previous = user.Tier
		user.TotalVisits++
		user.TotalStars += stars
		user.LastVisit = now
		if user.Tier, err = loyalty.TierForStars(user.TotalStars); err != nil {
			return err
		}
		if err := tx.Users.UpdateStanding(ctx, user); err != nil {
			return err
		}

		granted, err = grantUnlocked(ctx, tx, user, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	tierChanged := user.Tier != previous
	s.logger.Info("visit recorded",
		zap.String("user_id", user.ID),
		zap.String("restaurant_id", visit.RestaurantID),
		zap.Int("stars", stars),
		zap.Int("total_stars", user.TotalStars),
		zap.String("tier", string(user.Tier)),
		zap.Int("rewards_granted", len(granted)))

	s.afterCommit(user, visit, tierChanged && loyalty.Rank(user.Tier) > loyalty.Rank(previous))

	return &models.RecordVisitResponse{
		Visit:       *visit,
		User:        *user,
		TierChanged: tierChanged,
	}, nil
}

// afterCommit runs the notifications. They never fail the request.
func (s *VisitService) afterCommit(user *models.User, visit *models.Visit, upgraded bool) {
	if upgraded && s.mailer != nil {
		name, email, tier, stars := user.Name, user.Email, string(user.Tier), user.TotalStars
		go func() {
			if err := s.mailer.SendTierUpgradeEmail(email, name, tier, stars); err != nil {
				s.logger.Warn("tier upgrade email failed", zap.String("user_id", user.ID), zap.Error(err))
			}
		}()
	}

	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	event := models.VisitEvent{
		VisitID:      visit.ID,
		UserID:       user.ID,
		RestaurantID: visit.RestaurantID,
		StarsEarned:  visit.StarsEarned,
		TotalStars:   user.TotalStars,
		Tier:         user.Tier,
		Date:         visit.Date,
	}
	if err := s.publisher.PublishJSON(ctx, mq.RoutingKeyVisitRecorded, event); err != nil {
		s.logger.Warn("publish visit event failed", zap.String("visit_id", visit.ID), zap.Error(err))
	}
}

// ListVisits returns a user's visits, newest first.
func (s *VisitService) ListVisits(ctx context.Context, userID string) ([]models.Visit, error) {
	if _, err := s.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Visits.ListByUser(ctx, userID)
}
