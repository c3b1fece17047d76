package postgres

import (
	"context"
	"database/sql"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

var _ database.CostRepository = (*CostRepo)(nil)

const costColumns = `id, user_id, vehicle_id, category, description, amount, date, vendor, receipt_number, notes, is_recurring, recurring_interval, created_at, updated_at`

type CostRepo struct {
	db *sql.DB
}

func NewCostRepo(db *sql.DB) *CostRepo {
	return &CostRepo{db: db}
}

func (r *CostRepo) List(ctx context.Context, userID string) ([]domain.Cost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+costColumns+` FROM costs WHERE user_id = $1 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Cost
	for rows.Next() {
		var c domain.Cost
		var vehicleID, vendor, receiptNo, notes, interval sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &vehicleID, &c.Category, &c.Description,
			&c.Amount, &c.Date, &vendor, &receiptNo, &notes, &c.IsRecurring, &interval,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.VehicleID = vehicleID.String
		c.Vendor = vendor.String
		c.ReceiptNumber = receiptNo.String
		c.Notes = notes.String
		c.RecurringInterval = interval.String
		results = append(results, c)
	}
	return results, rows.Err()
}

func (r *CostRepo) Insert(ctx context.Context, c *domain.Cost) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO costs (`+costColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.UserID, nullString(c.VehicleID), c.Category, c.Description, c.Amount,
		c.Date, nullString(c.Vendor), nullString(c.ReceiptNumber), nullString(c.Notes),
		c.IsRecurring, nullString(c.RecurringInterval), c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CostRepo) Update(ctx context.Context, c *domain.Cost) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE costs SET vehicle_id = $1, category = $2, description = $3, amount = $4, date = $5, vendor = $6, receipt_number = $7, notes = $8, is_recurring = $9, recurring_interval = $10, updated_at = $11 WHERE user_id = $12 AND id = $13`,
		nullString(c.VehicleID), c.Category, c.Description, c.Amount, c.Date,
		nullString(c.Vendor), nullString(c.ReceiptNumber), nullString(c.Notes),
		c.IsRecurring, nullString(c.RecurringInterval), c.UpdatedAt, c.UserID, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *CostRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM costs WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}
