package postgres

import (
	"context"
	"database/sql"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

var _ database.DriverRepository = (*DriverRepo)(nil)

const driverColumns = `id, user_id, first_name, last_name, email, phone, license_number, license_expiry, status, total_trips, total_km, monthly_km, created_at, updated_at`

type DriverRepo struct {
	db *sql.DB
}

func NewDriverRepo(db *sql.DB) *DriverRepo {
	return &DriverRepo{db: db}
}

func (r *DriverRepo) List(ctx context.Context, userID string) ([]domain.Driver, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE user_id = $1 ORDER BY last_name, first_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Driver
	for rows.Next() {
		var d domain.Driver
		var phone, license sql.NullString
		var status string
		if err := rows.Scan(&d.ID, &d.UserID, &d.FirstName, &d.LastName, &d.Email,
			&phone, &license, &d.LicenseExpiry, &status, &d.TotalTrips, &d.TotalKM,
			&d.MonthlyKM, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Phone = phone.String
		d.LicenseNumber = license.String
		d.Status = domain.DriverStatus(status)
		results = append(results, d)
	}
	return results, rows.Err()
}

func (r *DriverRepo) Insert(ctx context.Context, d *domain.Driver) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO drivers (`+driverColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		d.ID, d.UserID, d.FirstName, d.LastName, d.Email, nullString(d.Phone),
		nullString(d.LicenseNumber), d.LicenseExpiry, string(d.Status), d.TotalTrips,
		d.TotalKM, d.MonthlyKM, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (r *DriverRepo) Update(ctx context.Context, d *domain.Driver) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE drivers SET first_name = $1, last_name = $2, email = $3, phone = $4, license_number = $5, license_expiry = $6, status = $7, total_trips = $8, total_km = $9, monthly_km = $10, updated_at = $11 WHERE user_id = $12 AND id = $13`,
		d.FirstName, d.LastName, d.Email, nullString(d.Phone), nullString(d.LicenseNumber),
		d.LicenseExpiry, string(d.Status), d.TotalTrips, d.TotalKM, d.MonthlyKM,
		d.UpdatedAt, d.UserID, d.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *DriverRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM drivers WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}
