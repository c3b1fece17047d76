package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

var _ database.TripRepository = (*TripRepo)(nil)

const tripColumns = `id, user_id, driver_name, vehicle_id, start_location, end_location, start_latitude, start_longitude, end_latitude, end_longitude, start_time, end_time, distance_km, purpose, notes, is_active, created_at, updated_at`

type TripRepo struct {
	db *sql.DB
}

func NewTripRepo(db *sql.DB) *TripRepo {
	return &TripRepo{db: db}
}

func (r *TripRepo) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1 ORDER BY start_time DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := scanTrip(rows, &t); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

func (r *TripRepo) Get(ctx context.Context, userID, id string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1 AND id = $2`,
		userID, id,
	)

	var t domain.Trip
	if err := scanTrip(row, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TripRepo) Active(ctx context.Context, userID string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1 AND is_active ORDER BY start_time DESC LIMIT 1`,
		userID,
	)

	var t domain.Trip
	if err := scanTrip(row, &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TripRepo) Insert(ctx context.Context, t *domain.Trip) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trips (`+tripColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		t.ID, t.UserID, t.DriverName, nullString(t.VehicleID), nullString(t.StartLocation), nullString(t.EndLocation),
		t.StartLat, t.StartLon, t.EndLat, t.EndLon, t.StartTime, t.EndTime, t.DistanceKM,
		t.Purpose, nullString(t.Notes), t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *TripRepo) Update(ctx context.Context, t *domain.Trip) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips SET driver_name = $1, vehicle_id = $2, start_location = $3, end_location = $4, start_latitude = $5, start_longitude = $6, end_latitude = $7, end_longitude = $8, start_time = $9, end_time = $10, distance_km = $11, purpose = $12, notes = $13, is_active = $14, updated_at = $15 WHERE user_id = $16 AND id = $17`,
		t.DriverName, nullString(t.VehicleID), nullString(t.StartLocation), nullString(t.EndLocation),
		t.StartLat, t.StartLon, t.EndLat, t.EndLon, t.StartTime, t.EndTime, t.DistanceKM,
		t.Purpose, nullString(t.Notes), t.IsActive, t.UpdatedAt, t.UserID, t.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *TripRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM trips WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *TripRepo) DeleteAll(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE user_id = $1`, userID)
	return err
}

func scanTrip(row rowScanner, t *domain.Trip) error {
	var vehicleID, startLoc, endLoc, notes sql.NullString
	if err := row.Scan(&t.ID, &t.UserID, &t.DriverName, &vehicleID, &startLoc, &endLoc,
		&t.StartLat, &t.StartLon, &t.EndLat, &t.EndLon, &t.StartTime, &t.EndTime,
		&t.DistanceKM, &t.Purpose, &notes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	t.VehicleID = vehicleID.String
	t.StartLocation = startLoc.String
	t.EndLocation = endLoc.String
	t.Notes = notes.String
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
