package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/starclub-backend/internal/config"
	"github.com/sefazor/starclub-backend/internal/job"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/internal/router"
	"github.com/sefazor/starclub-backend/internal/service"
	"github.com/sefazor/starclub-backend/pkg/email"
	jwtPkg "github.com/sefazor/starclub-backend/pkg/jwt"
	"github.com/sefazor/starclub-backend/pkg/qrcode"
)

// API is everything main needs to run after wiring.
type API struct {
	App      *fiber.App
	StatsJob *job.StatsReportJob
}

func emailConfig(cfg *config.Config) email.Config {
	return email.Config{
		APIKey:      cfg.Email.ResendAPIKey,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		FrontendURL: cfg.FrontendURL,
	}
}

func tokenManager(cfg *config.Config) *jwtPkg.Manager {
	return jwtPkg.NewManager(cfg.JWTSecret, cfg.JWTTTL)
}

func qrService(cfg *config.Config) *qrcode.QRService {
	return qrcode.NewQRService(cfg.FrontendURL)
}

// Demo accounts are tried before the database so they keep working
// against an empty database.
func credentialStrategies(cfg *config.Config, users *repository.UserRepository) []service.CredentialStrategy {
	strategies := make([]service.CredentialStrategy, 0, 2)
	if cfg.DemoLoginEnabled {
		strategies = append(strategies, service.NewDemoStrategy(service.DefaultDemoAccounts, users))
	}
	return append(strategies, service.NewDatabaseStrategy(users))
}

func routerOptions(cfg *config.Config, store *repository.Store) router.Options {
	return router.Options{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitMax: cfg.RateLimitMax,
		AccessLog:    cfg.LogFormat == "console",
		HealthCheck:  store.Ping,
	}
}
