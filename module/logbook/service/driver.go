package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

type DriverService struct {
	repo database.DriverRepository
}

func NewDriverService(repo database.DriverRepository) *DriverService {
	return &DriverService{repo: repo}
}

func (s *DriverService) List(ctx context.Context, userID string) ([]domain.Driver, error) {
	return s.repo.List(ctx, userID)
}

func (s *DriverService) Create(ctx context.Context, d *domain.Driver) error {
	if d.FirstName == "" {
		return fmt.Errorf("first_name: required")
	}
	if d.LastName == "" {
		return fmt.Errorf("last_name: required")
	}
	if d.Email == "" {
		return fmt.Errorf("email: required")
	}
	if d.Status == "" {
		d.Status = domain.DriverActive
	}

	now := time.Now()
	d.ID = uuid.NewString()
	d.CreatedAt = now
	d.UpdatedAt = now
	return s.repo.Insert(ctx, d)
}

func (s *DriverService) Update(ctx context.Context, d *domain.Driver) error {
	if d.ID == "" {
		return fmt.Errorf("id: required")
	}
	d.UpdatedAt = time.Now()
	return s.repo.Update(ctx, d)
}

func (s *DriverService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
