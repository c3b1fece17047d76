package domain

type GPSAccuracy string

const (
	AccuracyLow    GPSAccuracy = "low"
	AccuracyMedium GPSAccuracy = "medium"
	AccuracyHigh   GPSAccuracy = "high"
)

type Settings struct {
	GPSTracking          bool        `json:"gps_tracking"`
	AutoStartTrips       bool        `json:"auto_start_trips"`
	AutoStopTrips        bool        `json:"auto_stop_trips"`
	GPSAccuracy          GPSAccuracy `json:"gps_accuracy"`
	TrackingIntervalS    int         `json:"tracking_interval_s"`
	MinTripDistanceM     int         `json:"min_trip_distance_m"`
	DefaultDriver        string      `json:"default_driver"`
	DefaultVehicle       string      `json:"default_vehicle"`
	DefaultFuelType      string      `json:"default_fuel_type"`
	BusinessTripsDefault bool        `json:"business_trips_default"`
	EnableNotifications  bool        `json:"enable_notifications"`
	DataRetentionDays    int         `json:"data_retention_days"`
	ExportFormat         string      `json:"export_format"`
	Language             string      `json:"language"`
}

func DefaultSettings() Settings {
	return Settings{
		GPSTracking:          true,
		AutoStartTrips:       false,
		AutoStopTrips:        false,
		GPSAccuracy:          AccuracyHigh,
		TrackingIntervalS:    30,
		MinTripDistanceM:     100,
		DefaultFuelType:      "Benzin",
		BusinessTripsDefault: true,
		EnableNotifications:  true,
		DataRetentionDays:    0,
		ExportFormat:         "csv",
		Language:             "de",
	}
}
