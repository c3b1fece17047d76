package domain

type TripEventType string

const (
	TripStarted     TripEventType = "trip_started"
	TripEnded       TripEventType = "trip_ended"
	AutoStartFailed TripEventType = "auto_start_failed"
	AutoStopFailed  TripEventType = "auto_stop_failed"
)

type TripEvent struct {
	Type       TripEventType `json:"type"`
	UserID     string        `json:"user_id"`
	TripID     string        `json:"trip_id,omitempty"`
	VehicleID  string        `json:"vehicle_id,omitempty"`
	DriverName string        `json:"driver_name,omitempty"`
	Message    string        `json:"message,omitempty"`
	Timestamp  int64         `json:"timestamp"`
}
