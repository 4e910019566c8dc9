package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/starclub-backend/pkg/jwt"
)

// ErrNoMatch tells the login chain to try the next strategy.
var ErrNoMatch = errors.New("no matching credentials")

// CredentialStrategy checks an email/password pair. It returns ErrNoMatch
// when it has no opinion, any other error stops the chain.
type CredentialStrategy interface {
	Name() string
	Authenticate(ctx context.Context, email, password string) (models.Principal, error)
}

type DemoAccount struct {
	Email    string
	Password string
	Name     string
	IsAdmin  bool
}

var DefaultDemoAccounts = []DemoAccount{
	{Email: "user@example.com", Password: "password123", Name: "Demo User"},
	{Email: "admin@example.com", Password: "admin123", Name: "Admin User", IsAdmin: true},
}

// DemoStrategy accepts a fixed set of demo accounts. When a stored user
// with the same email exists its id is used so the session can see data.
type DemoStrategy struct {
	accounts []DemoAccount
	users    *repository.UserRepository
}

func NewDemoStrategy(accounts []DemoAccount, users *repository.UserRepository) *DemoStrategy {
	return &DemoStrategy{accounts: accounts, users: users}
}

func (s *DemoStrategy) Name() string { return "demo" }

func (s *DemoStrategy) Authenticate(ctx context.Context, email, password string) (models.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, acc := range s.accounts {
		if acc.Email != email || acc.Password != password {
			continue
		}
		p := models.Principal{
			ID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte("demo:"+acc.Email)).String(),
			Name:    acc.Name,
			Email:   acc.Email,
			IsAdmin: acc.IsAdmin,
		}
		if s.users != nil {
			user, err := s.users.GetByEmail(ctx, acc.Email)
			switch {
			case err == nil:
				// The stored row wins over the built-in account.
				if err := checkActive(user); err != nil {
					return models.Principal{}, err
				}
				return principalOf(user), nil
			case !errors.Is(err, models.ErrNotFound):
				return models.Principal{}, err
			}
		}
		return p, nil
	}
	return models.Principal{}, ErrNoMatch
}

// DatabaseStrategy checks the bcrypt hash of a stored user.
type DatabaseStrategy struct {
	users *repository.UserRepository
}

func NewDatabaseStrategy(users *repository.UserRepository) *DatabaseStrategy {
	return &DatabaseStrategy{users: users}
}

func (s *DatabaseStrategy) Name() string { return "database" }

func (s *DatabaseStrategy) Authenticate(ctx context.Context, email, password string) (models.Principal, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return models.Principal{}, ErrNoMatch
	}
	if err != nil {
		return models.Principal{}, err
	}
	if user.Password == "" || bcrypt.ComparePassword(user.Password, password) != nil {
		return models.Principal{}, ErrNoMatch
	}
	if err := checkActive(user); err != nil {
		return models.Principal{}, err
	}
	return principalOf(user), nil
}

type AuthService struct {
	userRepo   *repository.UserRepository
	strategies []CredentialStrategy
	tokens     *jwtPkg.Manager
	mailer     Mailer
	logger     *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, strategies []CredentialStrategy, tokens *jwtPkg.Manager, mailer Mailer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		strategies: strategies,
		tokens:     tokens,
		mailer:     mailer,
		logger:     logger.Named("auth"),
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
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

	now := time.Now()
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
		JoinDate: now,
		Status:   models.StatusActive,
		Tier:     models.TierBronze,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(principalOf(user))
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.Warn("welcome email failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}()

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return &models.AuthResponse{
		Token:     token,
		Principal: principalOf(user),
		User:      user,
	}, nil
}

// Login walks the strategy chain; the first strategy that recognises the
// credentials wins. Login never changes visit counters.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	for _, strategy := range s.strategies {
		principal, err := strategy.Authenticate(ctx, req.Email, req.Password)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if req.IsAdmin && !principal.IsAdmin {
			s.logger.Info("admin login refused", zap.String("user_id", principal.ID))
			return nil, fmt.Errorf("admin access required: %w", models.ErrForbidden)
		}

		token, err := s.tokens.GenerateToken(principal)
		if err != nil {
			return nil, err
		}
		s.logger.Info("login", zap.String("user_id", principal.ID), zap.String("strategy", strategy.Name()))
		return &models.AuthResponse{Token: token, Principal: principal}, nil
	}
	return nil, fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)
}

func checkActive(u *models.User) error {
	if u.Status == models.StatusInactive {
		return fmt.Errorf("account is inactive: %w", models.ErrForbidden)
	}
	return nil
}

func principalOf(u *models.User) models.Principal {
	return models.Principal{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
