package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/service"
	"github.com/sefazor/starclub-backend/pkg/qrcode"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

const maxImageSize = 5 << 20

type RestaurantHandler struct {
	restaurantService *service.RestaurantService
	validator         *utils.Validator
	logger            *zap.Logger
}

func NewRestaurantHandler(restaurantService *service.RestaurantService, validator *utils.Validator, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		validator:         validator,
		logger:            logger,
	}
}

func (h *RestaurantHandler) GetRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.restaurantService.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(restaurants, "Restaurants retrieved successfully"))
}

func (h *RestaurantHandler) GetRestaurant(c *fiber.Ctx) error {
	restaurant, err := h.restaurantService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(restaurant, "Restaurant retrieved successfully"))
}

func (h *RestaurantHandler) GetQRCode(c *fiber.Ctx) error {
	size := c.QueryInt("size", qrcode.DefaultSize)
	if size < 64 || size > 1024 {
		return respondError(c, h.logger, fmt.Errorf("size must be between 64 and 1024: %w", models.ErrInvalidInput))
	}

	png, err := h.restaurantService.CheckInQRCode(c.UserContext(), c.Params("id"), size)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// CreateRestaurant accepts either JSON with an image url or a multipart
// form with an optional "image" file.
func (h *RestaurantHandler) CreateRestaurant(c *fiber.Ctx) error {
	var req models.CreateRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	var upload *service.ImageUpload
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if file, err := c.FormFile("image"); err == nil {
			if file.Size > maxImageSize {
				return respondError(c, h.logger, fmt.Errorf("image larger than 5MB: %w", models.ErrInvalidInput))
			}
			contentType := file.Header.Get(fiber.HeaderContentType)
			if err := h.validator.Var(contentType, "supported_image"); err != nil {
				return respondError(c, h.logger, fmt.Errorf("unsupported image type %q: %w", contentType, models.ErrInvalidInput))
			}
			src, err := file.Open()
			if err != nil {
				return respondError(c, h.logger, fmt.Errorf("open uploaded image: %w", err))
			}
			defer src.Close()
			upload = &service.ImageUpload{Filename: file.Filename, ContentType: contentType, Reader: src}
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	restaurant, err := h.restaurantService.Create(c.UserContext(), req, upload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(restaurant, "Restaurant created successfully"))
}
