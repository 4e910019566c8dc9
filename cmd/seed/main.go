package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/config"
	"github.com/sefazor/starclub-backend/internal/loyalty"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/pkg/bcrypt"
	"github.com/sefazor/starclub-backend/pkg/database"
	"github.com/sefazor/starclub-backend/pkg/logger"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

const batchSize = 50

var restaurants = []models.Restaurant{
	{Name: "Burger Palace", Description: "Gourmet burgers and craft shakes in a casual, family-friendly atmosphere.", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?q=80&w=1000", Category: "Fast Food"},
	{Name: "Pizza Heaven", Description: "Authentic wood-fired pizzas with premium toppings and homemade sauce.", Image: "https://images.unsplash.com/photo-1513104890138-7c749659a591?q=80&w=1000", Category: "Italian"},
	{Name: "Sushi Delight", Description: "Fresh, high-quality sushi and Japanese specialties prepared by master chefs.", Image: "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?q=80&w=1000", Category: "Japanese"},
	{Name: "Taco Fiesta", Description: "Authentic Mexican street tacos and refreshing margaritas in a vibrant setting.", Image: "https://images.unsplash.com/photo-1551504734-5ee1c4a1479b?q=80&w=1000", Category: "Mexican"},
	{Name: "Pasta Paradise", Description: "Handmade pasta and traditional Italian dishes with a modern twist.", Image: "https://images.unsplash.com/photo-1473093295043-cdd812d0e601?q=80&w=1000", Category: "Italian"},
	{Name: "Breakfast Barn", Description: "All-day breakfast favorites and specialty coffee in a cozy, rustic environment.", Image: "https://images.unsplash.com/photo-1528207776546-365bb710ee93?q=80&w=1000", Category: "Breakfast"},
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth",
		"David", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
		"Christopher", "Nancy", "Daniel", "Lisa", "Matthew", "Margaret", "Anthony", "Betty", "Mark", "Sandra",
		"Donald", "Ashley", "Steven", "Dorothy", "Paul", "Kimberly", "Andrew", "Emily", "Joshua", "Donna",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor",
		"Anderson", "Thomas", "Jackson", "White", "Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
		"Clark", "Rodriguez", "Lewis", "Lee", "Walker", "Hall", "Allen", "Young", "Hernandez", "King",
	}
	emailDomains = []string{
		"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "icloud.com",
		"aol.com", "protonmail.com", "mail.com", "zoho.com", "yandex.com",
	}
)

func main() {
	count := flag.Int("users", 200, "number of generated members")
	reset := flag.Bool("reset", false, "delete existing users, visits and restaurants first")
	flag.Parse()

	cfg, _, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	if err := seed(context.Background(), cfg, zl, *count, *reset); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	zl.Info("database seeded")
}

func seed(ctx context.Context, cfg *config.Config, zl *zap.Logger, count int, reset bool) error {
	db, err := database.Open(ctx, database.Options{
		Driver:   cfg.Database.Driver,
		URL:      cfg.Database.URL,
		Attempts: cfg.Database.ConnectAttempts,
	}, zl)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}
	if reset {
		if err := clearData(ctx, db); err != nil {
			return err
		}
		zl.Info("cleared existing data")
	}

	store := repository.NewStore(db)
	return store.WithinTransaction(ctx, func(tx *repository.Store) error {
		created := make([]models.Restaurant, len(restaurants))
		copy(created, restaurants)
		for i := range created {
			if err := tx.Restaurants.Create(ctx, &created[i]); err != nil {
				return fmt.Errorf("create restaurant %q: %w", created[i].Name, err)
			}
		}
		zl.Info("created restaurants", zap.Int("count", len(created)))

		now := time.Now()
		accounts, err := fixedAccounts(now)
		if err != nil {
			return err
		}
		for i := range accounts {
			if err := tx.Users.Create(ctx, &accounts[i]); err != nil {
				return fmt.Errorf("create %s: %w", accounts[i].Email, err)
			}
		}

		hash, err := bcrypt.HashPassword("password123")
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
		members := generateMembers(rng, count, hash, now)
		if err := tx.Users.CreateInBatches(ctx, members, batchSize); err != nil {
			return fmt.Errorf("create members: %w", err)
		}
		zl.Info("created members", zap.Int("count", len(members)), zap.Int("batch_size", batchSize))

		catalog, err := tx.Rewards.GetAll(ctx)
		if err != nil {
			return err
		}
		visits, grants := history(rng, append(accounts, members...), created, catalog)
		if err := tx.Visits.CreateInBatches(ctx, visits, 500); err != nil {
			return fmt.Errorf("create visits: %w", err)
		}
		if err := tx.Rewards.Grant(ctx, grants); err != nil {
			return fmt.Errorf("grant rewards: %w", err)
		}
		zl.Info("created visit history", zap.Int("visits", len(visits)), zap.Int("rewards", len(grants)))
		return nil
	})
}

// history builds the visit log and reward grants behind each user's
// counters, so reconciling a seeded user changes nothing.
func history(rng *rand.Rand, users []models.User, places []models.Restaurant, catalog []models.Reward) ([]models.Visit, []models.UserReward) {
	var (
		visits []models.Visit
		grants []models.UserReward
	)
	for _, u := range users {
		visits = append(visits, generateVisits(rng, u, places)...)
		for _, r := range loyalty.UnlockedRewards(u.TotalStars, catalog, nil) {
			grants = append(grants, models.UserReward{UserID: u.ID, RewardID: r.ID, DateEarned: u.LastVisit})
		}
	}
	return visits, grants
}

// generateVisits spreads the user's stars over TotalVisits visits between
// the join date and the last visit. The newest visit is on LastVisit.
func generateVisits(rng *rand.Rand, u models.User, places []models.Restaurant) []models.Visit {
	if u.TotalVisits == 0 {
		return nil
	}
	visits := make([]models.Visit, u.TotalVisits)
	for i := range visits {
		visits[i] = models.Visit{
			ID:           uuid.NewString(),
			UserID:       u.ID,
			RestaurantID: places[rng.IntN(len(places))].ID,
			Date:         between(rng, u.JoinDate, u.LastVisit),
			StarsEarned:  1,
		}
	}
	for extra := u.TotalStars - u.TotalVisits; extra > 0; extra-- {
		visits[rng.IntN(len(visits))].StarsEarned++
	}
	visits[len(visits)-1].Date = u.LastVisit
	return visits
}

func clearData(ctx context.Context, db *gorm.DB) error {
	all := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&models.UserReward{}, &models.Visit{}, &models.User{}, &models.Restaurant{}} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// fixedAccounts returns the admin and demo logins.
func fixedAccounts(now time.Time) ([]models.User, error) {
	adminHash, err := bcrypt.HashPassword("admin123")
	if err != nil {
		return nil, err
	}
	demoHash, err := bcrypt.HashPassword("password123")
	if err != nil {
		return nil, err
	}
	demoTier, err := loyalty.TierForStars(20)
	if err != nil {
		return nil, err
	}
	return []models.User{
		{
			Name: "Admin User", Email: "admin@example.com", Password: adminHash,
			Phone: "(555) 123-4567", JoinDate: now,
			Status: models.StatusActive, Tier: models.TierBronze, IsAdmin: true,
		},
		{
			Name: "Demo User", Email: "user@example.com", Password: demoHash,
			Phone: "(555) 987-6543", JoinDate: now.AddDate(0, 0, -30), LastVisit: now,
			TotalVisits: 15, TotalStars: 20, FavoriteRestaurant: "Burger Palace",
			Status: models.StatusActive, Tier: demoTier,
		},
	}, nil
}

// generateMembers builds count members with unique emails. Each member's
// tier matches its star total.
func generateMembers(rng *rand.Rand, count int, passwordHash string, now time.Time) []models.User {
	yearAgo := now.AddDate(-1, 0, 0)
	seen := make(map[string]bool, count)
	users := make([]models.User, 0, count)

	for len(users) < count {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		email := memberEmail(rng, first, last)
		for seen[email] {
			local, domain, _ := strings.Cut(email, "@")
			email = local + utils.GenerateRandomString(3) + "@" + domain
			email = strings.ToLower(email)
		}
		seen[email] = true

		joined := between(rng, yearAgo, now)
		visits := rng.IntN(50) + 1
		stars := visits + rng.IntN(20)
		tier, _ := loyalty.TierForStars(stars)

		status := models.StatusActive
		if rng.Float64() < 0.1 {
			status = models.StatusInactive
		}

		users = append(users, models.User{
			ID:                 uuid.NewString(),
			Name:               first + " " + last,
			Email:              email,
			Password:           passwordHash,
			Phone:              utils.RandomPhone(),
			JoinDate:           joined,
			LastVisit:          between(rng, joined, now),
			TotalVisits:        visits,
			TotalStars:         stars,
			FavoriteRestaurant: restaurants[rng.IntN(len(restaurants))].Name,
			Status:             status,
			Tier:               tier,
		})
	}
	return users
}

func memberEmail(rng *rand.Rand, first, last string) string {
	first, last = strings.ToLower(first), strings.ToLower(last)
	domain := emailDomains[rng.IntN(len(emailDomains))]
	switch r := rng.Float64(); {
	case r < 0.33:
		return first + "." + last + "@" + domain
	case r < 0.66:
		return first[:1] + "." + last + "@" + domain
	default:
		suffix := ""
		if rng.Float64() > 0.7 {
			suffix = fmt.Sprint(rng.IntN(100))
		}
		return first + last + suffix + "@" + domain
	}
}

func between(rng *rand.Rand, from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(rng.Int64N(int64(span))))
}
