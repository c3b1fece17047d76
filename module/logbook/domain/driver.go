package domain

import "time"

type DriverStatus string

const (
	DriverActive    DriverStatus = "active"
	DriverInactive  DriverStatus = "inactive"
	DriverSuspended DriverStatus = "suspended"
)

type Driver struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone,omitempty"`
	LicenseNumber string       `json:"license_number,omitempty"`
	LicenseExpiry *time.Time   `json:"license_expiry,omitempty"`
	Status        DriverStatus `json:"status"`
	TotalTrips    int          `json:"total_trips"`
	TotalKM       float64      `json:"total_km"`
	MonthlyKM     float64      `json:"monthly_km"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
