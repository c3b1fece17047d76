package service

import (
	"context"
	"testing"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type mockSettingsRepo struct {
	getFn    func(ctx context.Context, userID string) (*domain.Settings, error)
	putFn    func(ctx context.Context, userID string, s *domain.Settings) error
	deleteFn func(ctx context.Context, userID string) error
}

func (m *mockSettingsRepo) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	return m.getFn(ctx, userID)
}

func (m *mockSettingsRepo) Put(ctx context.Context, userID string, s *domain.Settings) error {
	return m.putFn(ctx, userID, s)
}

func (m *mockSettingsRepo) Delete(ctx context.Context, userID string) error {
	return m.deleteFn(ctx, userID)
}

type recordingRefresher struct {
	refreshed []string
}

func (r *recordingRefresher) Refresh(_ context.Context, userID string) error {
	r.refreshed = append(r.refreshed, userID)
	return nil
}

func TestSettingsGetFallsBackToDefaults(t *testing.T) {
	repo := &mockSettingsRepo{
		getFn: func(context.Context, string) (*domain.Settings, error) { return nil, nil },
	}
	svc := NewSettingsService(repo, discardLogger())

	s, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	def := domain.DefaultSettings()
	if *s != def {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestSettingsSaveTriggersMonitorRefresh(t *testing.T) {
	var stored *domain.Settings
	repo := &mockSettingsRepo{
		putFn: func(_ context.Context, _ string, s *domain.Settings) error {
			stored = s
			return nil
		},
	}
	refresher := &recordingRefresher{}
	svc := NewSettingsService(repo, discardLogger())
	svc.SetRefresher(refresher)

	in := domain.DefaultSettings()
	in.AutoStartTrips = true
	if err := svc.Save(context.Background(), "user-1", &in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored == nil || !stored.AutoStartTrips {
		t.Fatal("expected the settings to be stored")
	}
	if len(refresher.refreshed) != 1 || refresher.refreshed[0] != "user-1" {
		t.Fatalf("expected one refresh for user-1, got %v", refresher.refreshed)
	}
}

func TestSettingsSaveValidation(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepo{}, discardLogger())

	bad := domain.DefaultSettings()
	bad.GPSAccuracy = "ultra"
	if err := svc.Save(context.Background(), "user-1", &bad); err == nil {
		t.Fatal("expected an error for an unknown accuracy")
	}

	bad = domain.DefaultSettings()
	bad.TrackingIntervalS = 0
	if err := svc.Save(context.Background(), "user-1", &bad); err == nil {
		t.Fatal("expected an error for a zero interval")
	}

	bad = domain.DefaultSettings()
	bad.MinTripDistanceM = -1
	if err := svc.Save(context.Background(), "user-1", &bad); err == nil {
		t.Fatal("expected an error for a negative distance")
	}
}

func TestSettingsResetReturnsDefaults(t *testing.T) {
	deleted := false
	repo := &mockSettingsRepo{
		deleteFn: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	refresher := &recordingRefresher{}
	svc := NewSettingsService(repo, discardLogger())
	svc.SetRefresher(refresher)

	s, err := svc.Reset(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !deleted {
		t.Fatal("expected the stored settings to be deleted")
	}
	if def := domain.DefaultSettings(); *s != def {
		t.Fatalf("expected defaults after reset, got %+v", s)
	}
	if len(refresher.refreshed) != 1 {
		t.Fatalf("expected one refresh, got %v", refresher.refreshed)
	}
}
