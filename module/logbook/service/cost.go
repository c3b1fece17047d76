package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

type CostService struct {
	repo database.CostRepository
}

func NewCostService(repo database.CostRepository) *CostService {
	return &CostService{repo: repo}
}

func (s *CostService) List(ctx context.Context, userID string) ([]domain.Cost, error) {
	return s.repo.List(ctx, userID)
}

func (s *CostService) Create(ctx context.Context, c *domain.Cost) error {
	if err := validateCost(c); err != nil {
		return err
	}

	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.repo.Insert(ctx, c)
}

func (s *CostService) Update(ctx context.Context, c *domain.Cost) error {
	if c.ID == "" {
		return fmt.Errorf("id: required")
	}
	if err := validateCost(c); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	return s.repo.Update(ctx, c)
}

func (s *CostService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func validateCost(c *domain.Cost) error {
	if c.Category == "" {
		return fmt.Errorf("category: required")
	}
	if c.Description == "" {
		return fmt.Errorf("description: required")
	}
	if c.Amount <= 0 {
		return fmt.Errorf("amount: must be positive")
	}
	if c.Date.IsZero() {
		return fmt.Errorf("date: required")
	}
	return nil
}
