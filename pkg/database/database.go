package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sefazor/starclub-backend/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver   string
	URL      string
	Attempts int
	// Base delay between connection attempts; doubled after each failure.
	Backoff time.Duration
}

// Open connects to the database, retrying the first connection with
// exponential backoff. Nothing is retried after that.
func Open(ctx context.Context, opts Options, log *zap.Logger) (*gorm.DB, error) {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(opts.URL)
	case DriverSQLite:
		dialector = sqlite.Open(opts.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	cfg := &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	}

	delay := opts.Backoff
	var lastErr error
	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		db, err := gorm.Open(dialector, cfg)
		if err == nil {
			if err = ping(ctx, db); err == nil {
				if opts.Driver == DriverSQLite {
					// One connection keeps shared in-memory databases and
					// transactions on the same handle.
					sqlDB, _ := db.DB()
					sqlDB.SetMaxOpenConns(1)
				}
				return db, nil
			}
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
		}
		lastErr = err
		log.Warn("database connection failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", opts.Attempts),
			zap.Error(err))

		if attempt == opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, fmt.Errorf("connect to database after %d attempts: %w", opts.Attempts, lastErr)
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func RunMigrations(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Visit{},
		&models.Reward{},
		&models.UserReward{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Reward catalog is inserted once by name.
	for _, reward := range models.DefaultRewards {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Reward{}).Where("name = ?", reward.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("count reward %q: %w", reward.Name, err)
		}
		if count > 0 {
			continue
		}
		reward := reward
		if err := db.WithContext(ctx).Create(&reward).Error; err != nil {
			return fmt.Errorf("add reward %q: %w", reward.Name, err)
		}
	}
	return nil
}

type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

func newGormLogger(log *zap.Logger) logger.Interface {
	return logger.New(zapWriter{log: log.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
