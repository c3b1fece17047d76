package database

import (
	"context"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type VehicleRepository interface {
	List(ctx context.Context, userID string) ([]domain.Vehicle, error)
	Get(ctx context.Context, userID, id string) (*domain.Vehicle, error)
	Insert(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, userID, id string) error
}

type DriverRepository interface {
	List(ctx context.Context, userID string) ([]domain.Driver, error)
	Insert(ctx context.Context, d *domain.Driver) error
	Update(ctx context.Context, d *domain.Driver) error
	Delete(ctx context.Context, userID, id string) error
}

type TripRepository interface {
	List(ctx context.Context, userID string) ([]domain.Trip, error)
	Get(ctx context.Context, userID, id string) (*domain.Trip, error)
	// Active returns the user's active trip, or nil when there is none.
	Active(ctx context.Context, userID string) (*domain.Trip, error)
	Insert(ctx context.Context, t *domain.Trip) error
	Update(ctx context.Context, t *domain.Trip) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) error
}

type FuelRepository interface {
	List(ctx context.Context, userID string) ([]domain.FuelRecord, error)
	Insert(ctx context.Context, r *domain.FuelRecord) error
	Update(ctx context.Context, r *domain.FuelRecord) error
	Delete(ctx context.Context, userID, id string) error
}

type CostRepository interface {
	List(ctx context.Context, userID string) ([]domain.Cost, error)
	Insert(ctx context.Context, c *domain.Cost) error
	Update(ctx context.Context, c *domain.Cost) error
	Delete(ctx context.Context, userID, id string) error
}

type PositionRepository interface {
	Insert(ctx context.Context, p *domain.VehiclePosition) error
	GetLatest(ctx context.Context, userID, vehicleID string) (*domain.VehiclePosition, error)
	GetHistory(ctx context.Context, query *domain.PositionHistoryQuery) ([]domain.VehiclePosition, error)
}
