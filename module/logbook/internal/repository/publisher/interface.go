package publisher

import (
	"context"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type TripEventPublisher interface {
	Publish(ctx context.Context, event *domain.TripEvent) error
}
