package service

import (
	"context"
	"io"
)

type Mailer interface {
	SendWelcomeEmail(email, fullName string) error
	SendTierUpgradeEmail(email, fullName, tier string, totalStars int) error
}

type ImageStorage interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, reader io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
