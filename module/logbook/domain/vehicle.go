package domain

import "time"

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleInactive    VehicleStatus = "inactive"
)

type Vehicle struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand"`
	Model       string        `json:"model"`
	Plate       string        `json:"plate"`
	Fuel        string        `json:"fuel"`
	Year        int           `json:"year"`
	Consumption float64       `json:"consumption"`
	Status      VehicleStatus `json:"status"`
	InitialKM   float64       `json:"initial_km"`
	TotalKM     float64       `json:"total_km"`
	MonthlyKM   float64       `json:"monthly_km"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
