package postgres

import (
	"context"
	"database/sql"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

func (r *PositionRepo) Insert(ctx context.Context, p *domain.VehiclePosition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicle_positions (user_id, vehicle_id, latitude, longitude, speed_ms, accuracy, timestamp) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UserID, p.VehicleID, p.Lat, p.Lon, p.SpeedMS, p.Accuracy, p.Timestamp,
	)
	return err
}

func (r *PositionRepo) GetLatest(ctx context.Context, userID, vehicleID string) (*domain.VehiclePosition, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, vehicle_id, latitude, longitude, speed_ms, accuracy, timestamp FROM vehicle_positions WHERE user_id = $1 AND vehicle_id = $2 ORDER BY timestamp DESC LIMIT 1`,
		userID, vehicleID,
	)

	var p domain.VehiclePosition
	if err := row.Scan(&p.UserID, &p.VehicleID, &p.Lat, &p.Lon, &p.SpeedMS, &p.Accuracy, &p.Timestamp); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PositionRepo) GetHistory(ctx context.Context, query *domain.PositionHistoryQuery) ([]domain.VehiclePosition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, vehicle_id, latitude, longitude, speed_ms, accuracy, timestamp FROM vehicle_positions WHERE user_id = $1 AND vehicle_id = $2 AND timestamp >= $3 AND timestamp <= $4 ORDER BY timestamp ASC`,
		query.UserID, query.VehicleID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.VehiclePosition
	for rows.Next() {
		var p domain.VehiclePosition
		if err := rows.Scan(&p.UserID, &p.VehicleID, &p.Lat, &p.Lon, &p.SpeedMS, &p.Accuracy, &p.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
