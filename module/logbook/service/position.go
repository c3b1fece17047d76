package service

import (
	"context"
	"fmt"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

type PositionService struct {
	repo database.PositionRepository
}

func NewPositionService(repo database.PositionRepository) *PositionService {
	return &PositionService{repo: repo}
}

func (s *PositionService) Save(ctx context.Context, p *domain.VehiclePosition) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id: required")
	}
	if p.VehicleID == "" {
		return fmt.Errorf("vehicle_id: required")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if p.Timestamp.IsZero() {
		return fmt.Errorf("timestamp: required")
	}
	return s.repo.Insert(ctx, p)
}

func (s *PositionService) Latest(ctx context.Context, userID, vehicleID string) (*domain.VehiclePosition, error) {
	return s.repo.GetLatest(ctx, userID, vehicleID)
}

func (s *PositionService) History(ctx context.Context, q *domain.PositionHistoryQuery) ([]domain.VehiclePosition, error) {
	if q.End.Before(q.Start) {
		return nil, fmt.Errorf("end: before start")
	}
	return s.repo.GetHistory(ctx, q)
}
