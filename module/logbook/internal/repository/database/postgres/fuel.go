package postgres

import (
	"context"
	"database/sql"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

var _ database.FuelRepository = (*FuelRepo)(nil)

const fuelColumns = `id, user_id, vehicle_id, date, odometer_reading, fuel_type, fuel_amount, price_per_liter, total_amount, gas_station, location, receipt_number, receipt_image_url, notes, created_at, updated_at`

type FuelRepo struct {
	db *sql.DB
}

func NewFuelRepo(db *sql.DB) *FuelRepo {
	return &FuelRepo{db: db}
}

func (r *FuelRepo) List(ctx context.Context, userID string) ([]domain.FuelRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fuelColumns+` FROM fuel_records WHERE user_id = $1 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.FuelRecord
	for rows.Next() {
		var f domain.FuelRecord
		var vehicleID, location, receiptNo, receiptURL, notes sql.NullString
		if err := rows.Scan(&f.ID, &f.UserID, &vehicleID, &f.Date, &f.OdometerReading,
			&f.FuelType, &f.FuelAmount, &f.PricePerLiter, &f.TotalAmount, &f.GasStation,
			&location, &receiptNo, &receiptURL, &notes, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.VehicleID = vehicleID.String
		f.Location = location.String
		f.ReceiptNumber = receiptNo.String
		f.ReceiptImageURL = receiptURL.String
		f.Notes = notes.String
		results = append(results, f)
	}
	return results, rows.Err()
}

func (r *FuelRepo) Insert(ctx context.Context, f *domain.FuelRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fuel_records (`+fuelColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		f.ID, f.UserID, nullString(f.VehicleID), f.Date, f.OdometerReading, f.FuelType,
		f.FuelAmount, f.PricePerLiter, f.TotalAmount, f.GasStation, nullString(f.Location),
		nullString(f.ReceiptNumber), nullString(f.ReceiptImageURL), nullString(f.Notes),
		f.CreatedAt, f.UpdatedAt,
	)
	return err
}

func (r *FuelRepo) Update(ctx context.Context, f *domain.FuelRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fuel_records SET vehicle_id = $1, date = $2, odometer_reading = $3, fuel_type = $4, fuel_amount = $5, price_per_liter = $6, total_amount = $7, gas_station = $8, location = $9, receipt_number = $10, receipt_image_url = $11, notes = $12, updated_at = $13 WHERE user_id = $14 AND id = $15`,
		nullString(f.VehicleID), f.Date, f.OdometerReading, f.FuelType, f.FuelAmount,
		f.PricePerLiter, f.TotalAmount, f.GasStation, nullString(f.Location),
		nullString(f.ReceiptNumber), nullString(f.ReceiptImageURL), nullString(f.Notes),
		f.UpdatedAt, f.UserID, f.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *FuelRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM fuel_records WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}
