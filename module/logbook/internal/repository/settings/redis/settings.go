package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/settings"
)

var _ settings.Repository = (*SettingsRepo)(nil)

type SettingsRepo struct {
	client *goredis.Client
}

func NewSettingsRepo(client *goredis.Client) *SettingsRepo {
	return &SettingsRepo{client: client}
}

func key(userID string) string {
	return "logbook:settings:" + userID
}

func (r *SettingsRepo) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	raw, err := r.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	// Unmarshal over the defaults so fields added after the user last
	// saved still carry their default value.
	s := domain.DefaultSettings()
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) Put(ctx context.Context, userID string, s *domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := r.client.Set(ctx, key(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
