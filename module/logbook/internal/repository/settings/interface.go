package settings

import (
	"context"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

// Repository stores per-user app settings. Get returns (nil, nil) when the
// user has never saved settings.
type Repository interface {
	Get(ctx context.Context, userID string) (*domain.Settings, error)
	Put(ctx context.Context, userID string, s *domain.Settings) error
	Delete(ctx context.Context, userID string) error
}
