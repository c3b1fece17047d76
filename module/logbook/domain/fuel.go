package domain

import "time"

var FuelTypes = []string{"Benzin", "Diesel", "Super", "Super Plus", "E10", "AdBlue"}

type FuelRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	VehicleID       string    `json:"vehicle_id,omitempty"`
	Date            time.Time `json:"date"`
	OdometerReading *float64  `json:"odometer_reading,omitempty"`
	FuelType        string    `json:"fuel_type"`
	FuelAmount      float64   `json:"fuel_amount"`
	PricePerLiter   float64   `json:"price_per_liter"`
	TotalAmount     float64   `json:"total_amount"`
	GasStation      string    `json:"gas_station"`
	Location        string    `json:"location,omitempty"`
	ReceiptNumber   string    `json:"receipt_number,omitempty"`
	ReceiptImageURL string    `json:"receipt_image_url,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ExtractedReceiptData is the transient result of a receipt scan, used to
// pre-fill the fuel record form. Every field is optional; zero means the
// field was not recognized.
type ExtractedReceiptData struct {
	GasStation    string  `json:"gas_station,omitempty"`
	Location      string  `json:"location,omitempty"`
	Date          string  `json:"date,omitempty"`
	FuelType      string  `json:"fuel_type,omitempty"`
	FuelAmount    float64 `json:"fuel_amount,omitempty"`
	PricePerLiter float64 `json:"price_per_liter,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	ReceiptNumber string  `json:"receipt_number,omitempty"`
}

func (d ExtractedReceiptData) Empty() bool {
	return d == ExtractedReceiptData{}
}
