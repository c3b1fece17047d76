package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/publisher"
)

const defaultTripPurpose = "Geschäftlich"

// ManualTripInput carries the fields of a trip entered by hand rather
// than recorded live.
type ManualTripInput struct {
	DriverName    string    `json:"driver_name"`
	VehicleID     string    `json:"vehicle_id"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DistanceKM    float64   `json:"distance_km"`
	Purpose       string    `json:"purpose"`
	Notes         string    `json:"notes"`
}

type TripService struct {
	trips  database.TripRepository
	events publisher.TripEventPublisher
	logger *slog.Logger
	now    func() time.Time
}

func NewTripService(trips database.TripRepository, events publisher.TripEventPublisher, logger *slog.Logger) *TripService {
	return &TripService{
		trips:  trips,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TripService) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	return s.trips.List(ctx, userID)
}

func (s *TripService) Get(ctx context.Context, userID, id string) (*domain.Trip, error) {
	return s.trips.Get(ctx, userID, id)
}

// Active returns the user's running trip, or nil when none is running.
func (s *TripService) Active(ctx context.Context, userID string) (*domain.Trip, error) {
	return s.trips.Active(ctx, userID)
}

// Start opens a new trip. At most one trip per user may be active at a
// time.
func (s *TripService) Start(ctx context.Context, userID, driverName, vehicleID string, lat, lon *float64) (*domain.Trip, error) {
	if driverName == "" {
		return nil, fmt.Errorf("driver_name: required")
	}

	active, err := s.trips.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("a trip is already active")
	}

	now := s.now()
	t := &domain.Trip{
		ID:         uuid.NewString(),
		UserID:     userID,
		DriverName: driverName,
		VehicleID:  vehicleID,
		StartLat:   lat,
		StartLon:   lon,
		StartTime:  now,
		Purpose:    defaultTripPurpose,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.trips.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.TripEvent{
		Type:       domain.TripStarted,
		UserID:     userID,
		TripID:     t.ID,
		VehicleID:  vehicleID,
		DriverName: driverName,
		Message:    fmt.Sprintf("trip started by %s", driverName),
		Timestamp:  now.Unix(),
	})
	return t, nil
}

// End closes the user's active trip. When both end and start
// coordinates are known the travelled distance is derived from them.
func (s *TripService) End(ctx context.Context, userID, notes string, lat, lon *float64) (*domain.Trip, error) {
	active, err := s.trips.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, fmt.Errorf("no active trip")
	}

	now := s.now()
	active.EndTime = &now
	active.EndLat = lat
	active.EndLon = lon
	active.IsActive = false
	active.UpdatedAt = now
	if notes != "" {
		active.Notes = notes
	}
	if lat != nil && lon != nil && active.StartLat != nil && active.StartLon != nil {
		km := haversineMeters(*active.StartLat, *active.StartLon, *lat, *lon) / 1000
		km = math.Round(km*100) / 100
		active.DistanceKM = &km
	}
	if err := s.trips.Update(ctx, active); err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.TripEvent{
		Type:       domain.TripEnded,
		UserID:     userID,
		TripID:     active.ID,
		VehicleID:  active.VehicleID,
		DriverName: active.DriverName,
		Message:    fmt.Sprintf("trip ended by %s", active.DriverName),
		Timestamp:  now.Unix(),
	})
	return active, nil
}

// CreateManual records a finished trip entered by hand. When no time
// range is given the trip is assumed to span the past hour.
func (s *TripService) CreateManual(ctx context.Context, userID string, in ManualTripInput) (*domain.Trip, error) {
	if in.DriverName == "" {
		return nil, fmt.Errorf("driver_name: required")
	}
	if in.StartLocation == "" || in.EndLocation == "" {
		return nil, fmt.Errorf("start_location, end_location: required")
	}
	if in.DistanceKM <= 0 {
		return nil, fmt.Errorf("distance_km: must be positive")
	}

	now := s.now()
	start := in.StartTime
	end := in.EndTime
	if start.IsZero() {
		start = now.Add(-time.Hour)
	}
	if end.IsZero() {
		end = now
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_time: before start_time")
	}
	purpose := in.Purpose
	if purpose == "" {
		purpose = defaultTripPurpose
	}

	distance := in.DistanceKM
	t := &domain.Trip{
		ID:            uuid.NewString(),
		UserID:        userID,
		DriverName:    in.DriverName,
		VehicleID:     in.VehicleID,
		StartLocation: in.StartLocation,
		EndLocation:   in.EndLocation,
		StartTime:     start,
		EndTime:       &end,
		DistanceKM:    &distance,
		Purpose:       purpose,
		Notes:         in.Notes,
		IsActive:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.trips.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TripService) Update(ctx context.Context, t *domain.Trip) error {
	if t.ID == "" {
		return fmt.Errorf("id: required")
	}
	t.UpdatedAt = s.now()
	return s.trips.Update(ctx, t)
}

func (s *TripService) Delete(ctx context.Context, userID, id string) error {
	return s.trips.Delete(ctx, userID, id)
}

func (s *TripService) DeleteAll(ctx context.Context, userID string) error {
	return s.trips.DeleteAll(ctx, userID)
}

// publish failures must not fail the trip operation itself.
func (s *TripService) publish(ctx context.Context, ev *domain.TripEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "publish trip event failed",
			"type", ev.Type, "trip_id", ev.TripID, "err", err)
	}
}
