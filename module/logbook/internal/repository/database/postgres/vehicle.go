package postgres

import (
	"context"
	"database/sql"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

var _ database.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `id, user_id, name, brand, model, plate, fuel, year, consumption, status, initial_km, total_km, monthly_km, created_at, updated_at`

type VehicleRepo struct {
	db *sql.DB
}

func NewVehicleRepo(db *sql.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

func (r *VehicleRepo) List(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

func (r *VehicleRepo) Get(ctx context.Context, userID, id string) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE user_id = $1 AND id = $2`,
		userID, id,
	)

	var v domain.Vehicle
	if err := scanVehicle(row, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepo) Insert(ctx context.Context, v *domain.Vehicle) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		v.ID, v.UserID, v.Name, v.Brand, v.Model, v.Plate, v.Fuel, v.Year, v.Consumption,
		string(v.Status), v.InitialKM, v.TotalKM, v.MonthlyKM, v.CreatedAt, v.UpdatedAt,
	)
	return err
}

func (r *VehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vehicles SET name = $1, brand = $2, model = $3, plate = $4, fuel = $5, year = $6, consumption = $7, status = $8, initial_km = $9, total_km = $10, monthly_km = $11, updated_at = $12 WHERE user_id = $13 AND id = $14`,
		v.Name, v.Brand, v.Model, v.Plate, v.Fuel, v.Year, v.Consumption, string(v.Status),
		v.InitialKM, v.TotalKM, v.MonthlyKM, v.UpdatedAt, v.UserID, v.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *VehicleRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM vehicles WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner, v *domain.Vehicle) error {
	var status string
	if err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Brand, &v.Model, &v.Plate, &v.Fuel,
		&v.Year, &v.Consumption, &status, &v.InitialKM, &v.TotalKM, &v.MonthlyKM,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		return err
	}
	v.Status = domain.VehicleStatus(status)
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
