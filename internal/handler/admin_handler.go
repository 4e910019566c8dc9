package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/directory"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/service"
	"github.com/sefazor/starclub-backend/pkg/utils"
)

type AdminHandler struct {
	userService *service.UserService
	validator   *utils.Validator
	logger      *zap.Logger
}

func NewAdminHandler(userService *service.UserService, validator *utils.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		validator:   validator,
		logger:      logger,
	}
}

func (h *AdminHandler) parseQuery(c *fiber.Ctx) (directory.Query, error) {
	var req models.UserListRequest
	if err := c.QueryParser(&req); err != nil {
		return directory.Query{}, fmt.Errorf("invalid query string: %w", models.ErrInvalidInput)
	}
	if err := h.validator.Struct(req); err != nil {
		return directory.Query{}, err
	}
	return directory.Query{
		Search:   req.Search,
		Status:   req.Status,
		Tier:     req.Tier,
		Sort:     directory.SortField(req.Sort),
		Dir:      directory.Direction(req.Dir),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	page, err := h.userService.ListUsers(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(models.PageResponse{
		Items:      page.Users,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, "Users retrieved successfully"))
}

func (h *AdminHandler) UsersReport(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	pdf, err := h.userService.UsersReport(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="members-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(stats, "Stats retrieved successfully"))
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "User retrieved successfully"))
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(user, "User created successfully"))
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var req models.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userService.UpdateUser(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "User updated successfully"))
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "User deleted successfully"))
}

func (h *AdminHandler) ReconcileUser(c *fiber.Ctx) error {
	user, err := h.userService.ReconcileCounters(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "Counters reconciled successfully"))
}
