package domain

import "time"

// VehiclePosition is one sample from the live position stream. SpeedMS is
// the device-reported ground speed in m/s, absent when the device does not
// provide one.
type VehiclePosition struct {
	UserID    string    `json:"user_id"`
	VehicleID string    `json:"vehicle_id"`
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	SpeedMS   *float64  `json:"speed_ms,omitempty"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SpeedReading is a derived instantaneous speed in km/h. Readings live
// only in the tracking monitor's rolling history and are never persisted.
type SpeedReading struct {
	Speed     float64
	Timestamp time.Time
	Accuracy  *float64
}

type PositionHistoryQuery struct {
	UserID    string
	VehicleID string
	Start     time.Time
	End       time.Time
}
