package domain

import "time"

var CostCategories = []string{
	"Wartung", "Reparatur", "Versicherung", "TÜV/HU", "Reifen",
	"Autowäsche", "Parkgebühren", "Maut", "Leasing", "Finanzierung",
	"Zubehör", "Sonstiges",
}

type Cost struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	VehicleID         string    `json:"vehicle_id,omitempty"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	Amount            float64   `json:"amount"`
	Date              time.Time `json:"date"`
	Vendor            string    `json:"vendor,omitempty"`
	ReceiptNumber     string    `json:"receipt_number,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurringInterval string    `json:"recurring_interval,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
