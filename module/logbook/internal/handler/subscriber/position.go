package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/kamatt66/fahrtenbuch-pro-gps/internal/observability"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

const topicPattern = "/logbook/user/+/position"

type positionService interface {
	Save(ctx context.Context, p *domain.VehiclePosition) error
}

type trackingDispatcher interface {
	Dispatch(ctx context.Context, p *domain.VehiclePosition)
}

type positionMessage struct {
	VehicleID string   `json:"vehicle_id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	SpeedMS   *float64 `json:"speed_ms"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp int64    `json:"timestamp"`
}

type PositionSubscriber struct {
	client      mqtt.Client
	positionSvc positionService
	tracking    trackingDispatcher
	logger      *slog.Logger
}

func NewPositionSubscriber(client mqtt.Client, positionSvc positionService, tracking trackingDispatcher, logger *slog.Logger) *PositionSubscriber {
	return &PositionSubscriber{
		client:      client,
		positionSvc: positionSvc,
		tracking:    tracking,
		logger:      logger,
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx := context.Background()

	uid, err := userIDFromTopic(msg.Topic())
	if err != nil {
		observability.PositionsRejected.Inc()
		s.logger.Warn("invalid position topic", "topic", msg.Topic(), "err", err)
		return
	}

	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		observability.PositionsRejected.Inc()
		s.logger.Warn("invalid position message", "topic", msg.Topic(), "err", err)
		return
	}
	if err := validatePositionMessage(&raw); err != nil {
		observability.PositionsRejected.Inc()
		s.logger.Warn("position validation error", "topic", msg.Topic(), "err", err)
		return
	}

	p := &domain.VehiclePosition{
		UserID:    uid,
		VehicleID: raw.VehicleID,
		Lat:       raw.Latitude,
		Lon:       raw.Longitude,
		SpeedMS:   raw.SpeedMS,
		Accuracy:  raw.Accuracy,
		Timestamp: time.Unix(raw.Timestamp, 0),
	}

	if err := s.positionSvc.Save(ctx, p); err != nil {
		s.logger.Error("save position failed", "user_id", uid, "err", err)
		return
	}
	observability.PositionsReceived.Inc()

	s.tracking.Dispatch(ctx, p)
}

// userIDFromTopic extracts the user segment from
// /logbook/user/<id>/position.
func userIDFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 5 || parts[1] != "logbook" || parts[2] != "user" || parts[4] != "position" {
		return "", fmt.Errorf("unexpected topic shape")
	}
	if parts[3] == "" {
		return "", fmt.Errorf("empty user id")
	}
	return parts[3], nil
}

func validatePositionMessage(msg *positionMessage) error {
	if msg.VehicleID == "" {
		return fmt.Errorf("vehicle_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
