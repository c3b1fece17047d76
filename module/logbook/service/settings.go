package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/settings"
)

// monitorRefresher is notified when a user's settings change so that a
// running tracking monitor picks up the new flags. Wired after
// construction to break the settings/manager cycle.
type monitorRefresher interface {
	Refresh(ctx context.Context, userID string) error
}

type SettingsService struct {
	repo      settings.Repository
	refresher monitorRefresher
	logger    *slog.Logger
}

func NewSettingsService(repo settings.Repository, logger *slog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

func (s *SettingsService) SetRefresher(r monitorRefresher) {
	s.refresher = r
}

// Get returns the user's settings, falling back to the defaults when
// the user never saved any.
func (s *SettingsService) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		def := domain.DefaultSettings()
		return &def, nil
	}
	return stored, nil
}

func (s *SettingsService) Save(ctx context.Context, userID string, in *domain.Settings) error {
	switch in.GPSAccuracy {
	case domain.AccuracyLow, domain.AccuracyMedium, domain.AccuracyHigh:
	default:
		return fmt.Errorf("gps_accuracy: must be one of low, medium, high")
	}
	if in.TrackingIntervalS <= 0 {
		return fmt.Errorf("tracking_interval_s: must be positive")
	}
	if in.MinTripDistanceM < 0 {
		return fmt.Errorf("min_trip_distance_m: must not be negative")
	}

	if err := s.repo.Put(ctx, userID, in); err != nil {
		return err
	}
	s.refresh(ctx, userID)
	return nil
}

// Reset drops the user's stored settings and returns the defaults.
func (s *SettingsService) Reset(ctx context.Context, userID string) (*domain.Settings, error) {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return nil, err
	}
	s.refresh(ctx, userID)
	def := domain.DefaultSettings()
	return &def, nil
}

func (s *SettingsService) refresh(ctx context.Context, userID string) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.Refresh(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "refresh tracking monitor failed", "user_id", userID, "err", err)
	}
}
