//go:build wireinject

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/config"
	"github.com/sefazor/starclub-backend/internal/controller"
	"github.com/sefazor/starclub-backend/internal/handler"
	"github.com/sefazor/starclub-backend/internal/job"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/internal/router"
	"github.com/sefazor/starclub-backend/internal/service"
	"github.com/sefazor/starclub-backend/pkg/email"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

func InitializeAPI(cfg *config.Config, db *gorm.DB, images service.ImageStorage, publisher service.EventPublisher, logger *zap.Logger) (*API, error) {
	wire.Build(
		// Repositories
		repository.NewStore,
		wire.FieldsOf(new(*repository.Store), "Users", "Restaurants"),

		// Infrastructure
		emailConfig,
		email.NewEmailService,
		wire.Bind(new(service.Mailer), new(*email.EmailService)),
		tokenManager,
		qrService,
		credentialStrategies,

		// Services
		service.NewAuthService,
		service.NewUserService,
		service.NewVisitService,
		service.NewRestaurantService,
		service.NewRewardService,

		// Controllers
		controller.NewAuthController,
		controller.NewVisitController,

		// Validator
		utils.NewValidator,

		// Handlers
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewAdminHandler,
		handler.NewVisitHandler,
		handler.NewRestaurantHandler,
		handler.NewRewardHandler,
		wire.Struct(new(router.Handlers), "*"),

		// App
		routerOptions,
		router.New,
		job.NewStatsReportJob,
		wire.Bind(new(job.StatsSource), new(*service.UserService)),
		wire.Struct(new(API), "*"),
	)
	return nil, nil
}
