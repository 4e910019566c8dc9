package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/controller"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

type AuthHandler struct {
	authController *controller.AuthController
	validator      *utils.Validator
	logger         *zap.Logger
}

func NewAuthHandler(authController *controller.AuthController, validator *utils.Validator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		validator:      validator,
		logger:         logger,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}
