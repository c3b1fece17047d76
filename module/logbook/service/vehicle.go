package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

type VehicleService struct {
	repo database.VehicleRepository
}

func NewVehicleService(repo database.VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

func (s *VehicleService) List(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	return s.repo.List(ctx, userID)
}

func (s *VehicleService) Get(ctx context.Context, userID, id string) (*domain.Vehicle, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *VehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Name == "" {
		return fmt.Errorf("name: required")
	}
	if v.Plate == "" {
		return fmt.Errorf("plate: required")
	}
	if v.Status == "" {
		v.Status = domain.VehicleActive
	}

	now := time.Now()
	v.ID = uuid.NewString()
	v.TotalKM = v.InitialKM
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.repo.Insert(ctx, v)
}

func (s *VehicleService) Update(ctx context.Context, v *domain.Vehicle) error {
	if v.ID == "" {
		return fmt.Errorf("id: required")
	}
	v.UpdatedAt = time.Now()
	return s.repo.Update(ctx, v)
}

func (s *VehicleService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
