package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/middleware"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/service"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
		logger:      logger,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	profile, err := h.userService.GetProfile(c.UserContext(), p.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(profile, "Profile retrieved successfully"))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), p.ID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}
