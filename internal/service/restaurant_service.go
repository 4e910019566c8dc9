package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/repository"
	"github.com/sefazor/starclub-backend/pkg/qrcode"
)

// ImageUpload is an image file posted together with a new restaurant.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type RestaurantService struct {
	restaurantRepo *repository.RestaurantRepository
	images         ImageStorage
	qr             *qrcode.QRService
	logger         *zap.Logger
}

// NewRestaurantService accepts a nil images store; uploads are then refused.
func NewRestaurantService(restaurantRepo *repository.RestaurantRepository, images ImageStorage, qr *qrcode.QRService, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		images:         images,
		qr:             qr,
		logger:         logger.Named("restaurants"),
	}
}

func (s *RestaurantService) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurantRepo.GetAll(ctx)
}

func (s *RestaurantService) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *RestaurantService) Create(ctx context.Context, req models.CreateRestaurantRequest, image *ImageUpload) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
		Category:    strings.TrimSpace(req.Category),
	}

	var uploadedKey string
	if image != nil {
		if s.images == nil {
			return nil, fmt.Errorf("image uploads are not configured: %w", models.ErrInvalidInput)
		}
		key := fmt.Sprintf("restaurants/%s%s", restaurant.ID, strings.ToLower(filepath.Ext(image.Filename)))
		url, err := s.images.Upload(ctx, key, image.ContentType, image.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload restaurant image: %w", err)
		}
		restaurant.Image = url
		uploadedKey = key
	}
	if restaurant.Image == "" {
		return nil, fmt.Errorf("an image file or image url is required: %w", models.ErrInvalidInput)
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		if uploadedKey != "" {
			// The request context may already be done.
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if delErr := s.images.Delete(cleanupCtx, uploadedKey); delErr != nil {
				s.logger.Warn("orphaned restaurant image", zap.String("key", uploadedKey), zap.Error(delErr))
			}
		}
		return nil, err
	}
	s.logger.Info("restaurant created", zap.String("restaurant_id", restaurant.ID))
	return restaurant, nil
}

// CheckInQRCode returns a PNG that links to the restaurant's check-in page.
func (s *RestaurantService) CheckInQRCode(ctx context.Context, id string, size int) ([]byte, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.qr.GenerateQRCode(restaurant.ID, size)
}
