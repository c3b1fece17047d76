package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type mockTripRepo struct {
	listFn      func(ctx context.Context, userID string) ([]domain.Trip, error)
	getFn       func(ctx context.Context, userID, id string) (*domain.Trip, error)
	activeFn    func(ctx context.Context, userID string) (*domain.Trip, error)
	insertFn    func(ctx context.Context, t *domain.Trip) error
	updateFn    func(ctx context.Context, t *domain.Trip) error
	deleteFn    func(ctx context.Context, userID, id string) error
	deleteAllFn func(ctx context.Context, userID string) error
}

func (m *mockTripRepo) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	return m.listFn(ctx, userID)
}

func (m *mockTripRepo) Get(ctx context.Context, userID, id string) (*domain.Trip, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockTripRepo) Active(ctx context.Context, userID string) (*domain.Trip, error) {
	return m.activeFn(ctx, userID)
}

func (m *mockTripRepo) Insert(ctx context.Context, t *domain.Trip) error {
	return m.insertFn(ctx, t)
}

func (m *mockTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	return m.updateFn(ctx, t)
}

func (m *mockTripRepo) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockTripRepo) DeleteAll(ctx context.Context, userID string) error {
	return m.deleteAllFn(ctx, userID)
}

func floatPtr(v float64) *float64 { return &v }

func TestTripStart(t *testing.T) {
	var inserted *domain.Trip
	repo := &mockTripRepo{
		activeFn: func(context.Context, string) (*domain.Trip, error) { return nil, nil },
		insertFn: func(_ context.Context, tr *domain.Trip) error {
			inserted = tr
			return nil
		},
	}
	events := &fakeEvents{}
	svc := NewTripService(repo, events, discardLogger())

	trip, err := svc.Start(context.Background(), "user-1", "Max", "veh-1", floatPtr(48.1), floatPtr(11.5))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !trip.IsActive {
		t.Fatal("expected started trip to be active")
	}
	if trip.Purpose != "Geschäftlich" {
		t.Fatalf("expected business purpose default, got %q", trip.Purpose)
	}
	if inserted == nil || inserted.ID != trip.ID {
		t.Fatal("expected the trip to be inserted")
	}
	if got := events.count(domain.TripStarted); got != 1 {
		t.Fatalf("expected one trip_started event, got %d", got)
	}
}

func TestTripStartRejectsSecondActiveTrip(t *testing.T) {
	repo := &mockTripRepo{
		activeFn: func(context.Context, string) (*domain.Trip, error) {
			return &domain.Trip{ID: "trip-1", IsActive: true}, nil
		},
	}
	svc := NewTripService(repo, &fakeEvents{}, discardLogger())

	if _, err := svc.Start(context.Background(), "user-1", "Max", "", nil, nil); err == nil {
		t.Fatal("expected an error while a trip is active")
	}
}

func TestTripStartRequiresDriver(t *testing.T) {
	svc := NewTripService(&mockTripRepo{}, &fakeEvents{}, discardLogger())
	if _, err := svc.Start(context.Background(), "user-1", "", "", nil, nil); err == nil {
		t.Fatal("expected an error for a missing driver name")
	}
}

func TestTripEndDerivesDistance(t *testing.T) {
	active := &domain.Trip{
		ID:         "trip-1",
		UserID:     "user-1",
		DriverName: "Max",
		StartLat:   floatPtr(48.10),
		StartLon:   floatPtr(11.50),
		StartTime:  time.Now().Add(-30 * time.Minute),
		IsActive:   true,
	}
	var updated *domain.Trip
	repo := &mockTripRepo{
		activeFn: func(context.Context, string) (*domain.Trip, error) { return active, nil },
		updateFn: func(_ context.Context, tr *domain.Trip) error {
			updated = tr
			return nil
		},
	}
	events := &fakeEvents{}
	svc := NewTripService(repo, events, discardLogger())

	// 0.01 degrees of latitude is roughly 1.11 km.
	trip, err := svc.End(context.Background(), "user-1", "", floatPtr(48.11), floatPtr(11.50))
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if trip.IsActive {
		t.Fatal("expected ended trip to be inactive")
	}
	if trip.DistanceKM == nil {
		t.Fatal("expected a derived distance")
	}
	if got := *trip.DistanceKM; got < 1.10 || got > 1.13 {
		t.Fatalf("expected roughly 1.11 km, got %f", got)
	}
	if updated == nil {
		t.Fatal("expected the trip to be persisted")
	}
	if got := events.count(domain.TripEnded); got != 1 {
		t.Fatalf("expected one trip_ended event, got %d", got)
	}
}

func TestTripEndWithoutActiveTrip(t *testing.T) {
	repo := &mockTripRepo{
		activeFn: func(context.Context, string) (*domain.Trip, error) { return nil, nil },
	}
	svc := NewTripService(repo, &fakeEvents{}, discardLogger())

	if _, err := svc.End(context.Background(), "user-1", "", nil, nil); err == nil {
		t.Fatal("expected an error without an active trip")
	}
}

func TestTripEndIdenticalCoordinatesYieldZeroDistance(t *testing.T) {
	active := &domain.Trip{
		ID:       "trip-1",
		UserID:   "user-1",
		StartLat: floatPtr(48.10),
		StartLon: floatPtr(11.50),
		IsActive: true,
	}
	repo := &mockTripRepo{
		activeFn: func(context.Context, string) (*domain.Trip, error) { return active, nil },
		updateFn: func(context.Context, *domain.Trip) error { return nil },
	}
	svc := NewTripService(repo, &fakeEvents{}, discardLogger())

	trip, err := svc.End(context.Background(), "user-1", "", floatPtr(48.10), floatPtr(11.50))
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if trip.DistanceKM == nil || *trip.DistanceKM != 0 {
		t.Fatalf("expected zero distance, got %v", trip.DistanceKM)
	}
}

func TestTripCreateManualDefaults(t *testing.T) {
	var inserted *domain.Trip
	repo := &mockTripRepo{
		insertFn: func(_ context.Context, tr *domain.Trip) error {
			inserted = tr
			return nil
		},
	}
	svc := NewTripService(repo, &fakeEvents{}, discardLogger())
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	trip, err := svc.CreateManual(context.Background(), "user-1", ManualTripInput{
		DriverName:    "Max",
		StartLocation: "München",
		EndLocation:   "Augsburg",
		DistanceKM:    65,
	})
	if err != nil {
		t.Fatalf("create manual: %v", err)
	}
	if trip.IsActive {
		t.Fatal("expected a manual trip to be finished")
	}
	if !trip.StartTime.Equal(now.Add(-time.Hour)) {
		t.Fatalf("expected the trip to span the past hour, start %v", trip.StartTime)
	}
	if trip.EndTime == nil || !trip.EndTime.Equal(now) {
		t.Fatalf("expected end time %v, got %v", now, trip.EndTime)
	}
	if trip.Purpose != "Geschäftlich" {
		t.Fatalf("expected business purpose default, got %q", trip.Purpose)
	}
	if inserted == nil {
		t.Fatal("expected the trip to be inserted")
	}
}

func TestTripCreateManualValidation(t *testing.T) {
	svc := NewTripService(&mockTripRepo{}, &fakeEvents{}, discardLogger())

	cases := []struct {
		name string
		in   ManualTripInput
	}{
		{"missing driver", ManualTripInput{StartLocation: "A", EndLocation: "B", DistanceKM: 1}},
		{"missing locations", ManualTripInput{DriverName: "Max", DistanceKM: 1}},
		{"non-positive distance", ManualTripInput{DriverName: "Max", StartLocation: "A", EndLocation: "B"}},
		{"end before start", ManualTripInput{
			DriverName: "Max", StartLocation: "A", EndLocation: "B", DistanceKM: 1,
			StartTime: time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateManual(context.Background(), "user-1", tc.in); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestTripPublishFailureDoesNotFailOperation(t *testing.T) {
	repo := &mockTripRepo{
		activeFn: func(context.Context, string) (*domain.Trip, error) { return nil, nil },
		insertFn: func(context.Context, *domain.Trip) error { return nil },
	}
	svc := NewTripService(repo, failingEvents{}, discardLogger())

	if _, err := svc.Start(context.Background(), "user-1", "Max", "", nil, nil); err != nil {
		t.Fatalf("start should survive a publish failure, got %v", err)
	}
}

type failingEvents struct{}

func (failingEvents) Publish(context.Context, *domain.TripEvent) error {
	return fmt.Errorf("broker down")
}
