package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/directory"
	"github.com/sefazor/starclub-backend/internal/loyalty"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/pkg/bcrypt"
	"github.com/sefazor/starclub-backend/pkg/report"
)

type UserService struct {
	store  *repository.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewUserService(store *repository.Store, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger.Named("users"),
		now:    time.Now,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.Users.GetByID(ctx, id)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := loyalty.Describe(user)
	if err != nil {
		return nil, err
	}
	rewards, err := s.store.Rewards.ListUserRewards(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{User: *user, Progress: progress, Rewards: rewards}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	return s.store.Users.UpdateFields(ctx, userID, map[string]any{
		"name":                strings.TrimSpace(req.Name),
		"phone":               req.Phone,
		"favorite_restaurant": req.FavoriteRestaurant,
	})
}

// ListUsers loads the whole member list and runs the directory pipeline.
func (s *UserService) ListUsers(ctx context.Context, q directory.Query) (directory.Page, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return directory.Page{}, err
	}
	return directory.Apply(users, q)
}

// UsersReport renders every user matching q, ignoring pagination.
func (s *UserService) UsersReport(ctx context.Context, q directory.Query) ([]byte, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	matched, err := directory.Filter(users, q)
	if err != nil {
		return nil, err
	}
	return report.BuildUsersPDF(report.UserReport{
		GeneratedAt: s.now(),
		Filter:      describeQuery(q),
		Total:       len(matched),
		Users:       matched,
	})
}

func (s *UserService) Stats(ctx context.Context) (directory.Stats, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return directory.Stats{}, err
	}
	return directory.Summarize(users), nil
}

// CreateUser is the admin path; new accounts always start at bronze with
// no stars.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	exists, err := s.store.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already exists: %w", models.ErrConflict)
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              req.Email,
		Password:           hashedPassword,
		Phone:              req.Phone,
		FavoriteRestaurant: req.FavoriteRestaurant,
		JoinDate:           s.now(),
		Status:             models.StatusActive,
		Tier:               models.TierBronze,
		IsAdmin:            req.IsAdmin,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created by admin", zap.String("user_id", user.ID), zap.Bool("is_admin", user.IsAdmin))
	return user, nil
}

// UpdateUser applies an admin edit. Only profile fields, status and the
// admin flag can change here.
func (s *UserService) UpdateUser(ctx context.Context, id string, req models.AdminUpdateUserRequest) (*models.User, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		existing, err := s.store.Users.GetByEmail(ctx, *req.Email)
		switch {
		case err == nil && existing.ID != id:
			return nil, fmt.Errorf("email already exists: %w", models.ErrConflict)
		case err != nil && !errors.Is(err, models.ErrNotFound):
			return nil, err
		}
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.FavoriteRestaurant != nil {
		fields["favorite_restaurant"] = *req.FavoriteRestaurant
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsAdmin != nil {
		fields["is_admin"] = *req.IsAdmin
	}
	if len(fields) == 0 {
		return s.store.Users.GetByID(ctx, id)
	}
	return s.store.Users.UpdateFields(ctx, id, fields)
}

// DeleteUser removes the account and its granted rewards. The visit log is
// kept.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
		if err := tx.Rewards.DeleteUserRewards(ctx, id); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// ReconcileCounters recomputes visits, stars, last visit and tier from the
// visit log, then grants any rewards the corrected total reaches.
func (s *UserService) ReconcileCounters(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("malformed user id: %w", models.ErrInvalidInput)
	}

	var user *models.User
	err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
		var err error
		if user, err = tx.Users.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		totals, err := tx.Visits.Totals(ctx, id)
		if err != nil {
			return err
		}

		user.TotalVisits = totals.Visits
		user.TotalStars = totals.Stars
		user.LastVisit = time.Time{}
		if totals.LastVisit != nil {
			user.LastVisit = totals.LastVisit.Date
		}
		if user.Tier, err = loyalty.TierForStars(user.TotalStars); err != nil {
			return err
		}
		if err := tx.Users.UpdateStanding(ctx, user); err != nil {
			return err
		}
		_, err = grantUnlocked(ctx, tx, user, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("counters reconciled",
		zap.String("user_id", user.ID),
		zap.Int("total_visits", user.TotalVisits),
		zap.Int("total_stars", user.TotalStars))
	return user, nil
}

func describeQuery(q directory.Query) string {
	var parts []string
	if q.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", q.Search))
	}
	if q.Status != "" && q.Status != models.FilterAll {
		parts = append(parts, "status="+q.Status)
	}
	if q.Tier != "" && q.Tier != models.FilterAll {
		parts = append(parts, "tier="+q.Tier)
	}
	if q.Sort != "" {
		parts = append(parts, fmt.Sprintf("sort=%s %s", q.Sort, q.Dir))
	}
	return strings.Join(parts, ", ")
}
