package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	internalConfig "github.com/sefazor/starclub-backend/internal/config"
)

// CloudflareStorage puts objects into an R2 bucket through the S3 API.
type CloudflareStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewCloudflareStorage(ctx context.Context, cfg internalConfig.R2Config, logger *zap.Logger) (*CloudflareStorage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &CloudflareStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger.Named("r2"),
	}, nil
}

func (s *CloudflareStorage) Upload(ctx context.Context, key, contentType string, src io.Reader) (string, error) {
	body, size, err := sized(src)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Info("object uploaded", zap.String("key", key), zap.Int64("size", size))
	return s.URL(key), nil
}

func (s *CloudflareStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

func (s *CloudflareStorage) URL(key string) string {
	return s.publicURL + "/" + key
}

// sized returns a reader with a known length. Seekable sources are measured
// in place, anything else is buffered.
func sized(src io.Reader) (io.Reader, int64, error) {
	if rs, ok := src.(io.ReadSeeker); ok {
		current, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get current position: %w", err)
		}
		end, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to seek to end: %w", err)
		}
		if _, err := rs.Seek(current, io.SeekStart); err != nil {
			return nil, 0, fmt.Errorf("failed to seek back to start: %w", err)
		}
		return rs, end - current, nil
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file content: %w", err)
	}
	return bytes.NewReader(buf), int64(len(buf)), nil
}
