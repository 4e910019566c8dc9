package router

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sefazor/starclub-backend/internal/handler"
	"github.com/sefazor/starclub-backend/internal/middleware"
	"github.com/sefazor/starclub-backend/internal/models"
	jwtPkg "github.com/sefazor/starclub-backend/pkg/jwt"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Admin      *handler.AdminHandler
	Visit      *handler.VisitHandler
	Restaurant *handler.RestaurantHandler
	Reward     *handler.RewardHandler
}

type Options struct {
	CORSOrigins  string
	RateLimitMax int
	// AccessLog turns on fiber's request logger.
	AccessLog bool
	// HealthCheck backs /healthz when set.
	HealthCheck func(ctx context.Context) error
}

func New(h Handlers, tokens *jwtPkg.Manager, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "starclub-backend",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    6 << 20,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: opts.CORSOrigins != "*",
	}))
	if opts.AccessLog {
		app.Use(logger.New())
	}
	if opts.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: tooManyRequests,
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("Database unavailable"))
			}
		}
		return c.JSON(models.SuccessResponse(nil, "ok"))
	})

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	if opts.RateLimitMax > 0 {
		auth.Use(limiter.New(limiter.Config{
			Max:        max(opts.RateLimitMax/6, 1),
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return "auth:" + c.IP()
			},
			LimitReached: tooManyRequests,
		}))
	}
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	api.Get("/restaurants", h.Restaurant.GetRestaurants)
	api.Get("/restaurants/:id", h.Restaurant.GetRestaurant)
	api.Get("/restaurants/:id/qrcode", h.Restaurant.GetQRCode)
	api.Get("/rewards", h.Reward.GetCatalog)

	// Protected routes
	api.Use(middleware.AuthMiddleware(tokens))
	{
		user := api.Group("/user")
		user.Get("/profile", h.User.GetMyProfile)
		user.Put("/profile", h.User.UpdateProfile)
		user.Get("/rewards", h.Reward.GetMyRewards)
		user.Post("/rewards/:id/redeem", h.Reward.RedeemReward)

		visits := api.Group("/visits")
		visits.Post("/", h.Visit.RecordVisit)
		visits.Get("/", h.Visit.ListVisits)

		admin := api.Group("/admin", middleware.RequireAdmin())
		admin.Get("/stats", h.Admin.Stats)
		admin.Get("/users", h.Admin.ListUsers)
		admin.Get("/users/report.pdf", h.Admin.UsersReport)
		admin.Post("/users", h.Admin.CreateUser)
		admin.Get("/users/:id", h.Admin.GetUser)
		admin.Put("/users/:id", h.Admin.UpdateUser)
		admin.Delete("/users/:id", h.Admin.DeleteUser)
		admin.Post("/users/:id/reconcile", h.Admin.ReconcileUser)
		admin.Post("/restaurants", h.Restaurant.CreateRestaurant)
	}

	return app
}

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("Too many requests"))
}
