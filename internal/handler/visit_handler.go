package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/controller"
	"github.com/sefazor/starclub-backend/internal/middleware"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

type VisitHandler struct {
	visitController *controller.VisitController
	validator       *utils.Validator
	logger          *zap.Logger
}

func NewVisitHandler(visitController *controller.VisitController, validator *utils.Validator, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{
		visitController: visitController,
		validator:       validator,
		logger:          logger,
	}
}

func (h *VisitHandler) RecordVisit(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	var req models.RecordVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.UserID == "" {
		req.UserID = p.ID
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.visitController.Record(c.UserContext(), p, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "Visit recorded successfully"))
}

func (h *VisitHandler) ListVisits(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	visits, err := h.visitController.List(c.UserContext(), p, c.Query("user_id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(visits, "Visits retrieved successfully"))
}
