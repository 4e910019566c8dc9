package controller

import (
	"context"
	"fmt"

	"github.com/sefazor/starclub-backend/internal/models"
	"github.com/sefazor/starclub-backend/internal/service"
)

// VisitController decides who may touch whose visit log.
type VisitController struct {
	visitService *service.VisitService
}

func NewVisitController(visitService *service.VisitService) *VisitController {
	return &VisitController{
		visitService: visitService,
	}
}

// Record lets members check in for themselves at the default star rate;
// admins may record for anyone and award any positive amount. An empty
// user id means the caller.
func (c *VisitController) Record(ctx context.Context, p models.Principal, req models.RecordVisitRequest) (*models.RecordVisitResponse, error) {
	if req.UserID == "" {
		req.UserID = p.ID
	}
	if err := authorize(p, req.UserID); err != nil {
		return nil, err
	}
	if !p.IsAdmin && req.StarsEarned != nil && *req.StarsEarned != models.DefaultStarsPerVisit {
		return nil, fmt.Errorf("only admins may award %d stars: %w", *req.StarsEarned, models.ErrForbidden)
	}
	return c.visitService.RecordVisit(ctx, req)
}

func (c *VisitController) List(ctx context.Context, p models.Principal, userID string) ([]models.Visit, error) {
	if userID == "" {
		userID = p.ID
	}
	if err := authorize(p, userID); err != nil {
		return nil, err
	}
	return c.visitService.ListVisits(ctx, userID)
}

func authorize(p models.Principal, userID string) error {
	if !p.IsAdmin && p.ID != userID {
		return fmt.Errorf("visits of another user: %w", models.ErrForbidden)
	}
	return nil
}
