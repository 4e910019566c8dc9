package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/middleware"
	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/service"
)

type RewardHandler struct {
	rewardService *service.RewardService
	logger        *zap.Logger
}

func NewRewardHandler(rewardService *service.RewardService, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
		logger:        logger,
	}
}

func (h *RewardHandler) GetCatalog(c *fiber.Ctx) error {
	rewards, err := h.rewardService.Catalog(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(rewards, "Rewards retrieved successfully"))
}

func (h *RewardHandler) GetMyRewards(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	rewards, err := h.rewardService.UserRewards(c.UserContext(), p.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(rewards, "Rewards retrieved successfully"))
}

func (h *RewardHandler) RedeemReward(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	reward, err := h.rewardService.Redeem(c.UserContext(), p.ID, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(reward, "Reward redeemed successfully"))
}
