package domain

import "time"

type Trip struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	DriverName    string     `json:"driver_name"`
	VehicleID     string     `json:"vehicle_id,omitempty"`
	StartLocation string     `json:"start_location,omitempty"`
	EndLocation   string     `json:"end_location,omitempty"`
	StartLat      *float64   `json:"start_latitude,omitempty"`
	StartLon      *float64   `json:"start_longitude,omitempty"`
	EndLat        *float64   `json:"end_latitude,omitempty"`
	EndLon        *float64   `json:"end_longitude,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	DistanceKM    *float64   `json:"distance_km,omitempty"`
	Purpose       string     `json:"purpose"`
	Notes         string     `json:"notes,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
