package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

func positionColumns() []string {
	return []string{"user_id", "vehicle_id", "latitude", "longitude", "speed_ms", "accuracy", "timestamp"}
}

func TestPositionInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	speed := 4.2
	mock.ExpectExec(`INSERT INTO vehicle_positions`).
		WithArgs("user-1", "veh-1", 48.137, 11.575, &speed, nil, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewPositionRepo(db)
	err = repo.Insert(context.Background(), &domain.VehiclePosition{
		UserID:    "user-1",
		VehicleID: "veh-1",
		Lat:       48.137,
		Lon:       11.575,
		SpeedMS:   &speed,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPositionGetLatest_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows(positionColumns()).
		AddRow("user-1", "veh-1", 48.137, 11.575, 4.2, 8.0, ts)

	mock.ExpectQuery(`SELECT (.+) FROM vehicle_positions WHERE user_id = (.+) AND vehicle_id = (.+) ORDER BY timestamp DESC LIMIT 1`).
		WithArgs("user-1", "veh-1").
		WillReturnRows(rows)

	repo := NewPositionRepo(db)
	p, err := repo.GetLatest(context.Background(), "user-1", "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.VehicleID != "veh-1" || p.Lat != 48.137 {
		t.Errorf("unexpected position %+v", p)
	}
	if p.SpeedMS == nil || *p.SpeedMS != 4.2 {
		t.Errorf("unexpected speed %v", p.SpeedMS)
	}
	if !p.Timestamp.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, p.Timestamp)
	}
}

func TestPositionGetLatest_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT (.+) FROM vehicle_positions WHERE user_id = (.+) AND vehicle_id = (.+)`).
		WithArgs("user-1", "unknown").
		WillReturnRows(sqlmock.NewRows(positionColumns()))

	repo := NewPositionRepo(db)
	_, err = repo.GetLatest(context.Background(), "user-1", "unknown")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPositionGetHistory_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	start := time.Unix(1715000000, 0)
	end := time.Unix(1715009999, 0)
	rows := sqlmock.NewRows(positionColumns()).
		AddRow("user-1", "veh-1", 48.1, 11.5, nil, nil, start).
		AddRow("user-1", "veh-1", 48.2, 11.6, 5.0, 10.0, end)

	mock.ExpectQuery(`SELECT (.+) FROM vehicle_positions WHERE user_id = (.+) AND vehicle_id = (.+) AND timestamp >= (.+) AND timestamp <= (.+) ORDER BY timestamp ASC`).
		WithArgs("user-1", "veh-1", start, end).
		WillReturnRows(rows)

	repo := NewPositionRepo(db)
	results, err := repo.GetHistory(context.Background(), &domain.PositionHistoryQuery{
		UserID:    "user-1",
		VehicleID: "veh-1",
		Start:     start,
		End:       end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SpeedMS != nil {
		t.Errorf("expected nil speed for the first sample, got %v", results[0].SpeedMS)
	}
	if results[1].Lat != 48.2 {
		t.Errorf("expected 48.2, got %f", results[1].Lat)
	}
}

func TestPositionGetHistory_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	start := time.Unix(1715000000, 0)
	end := time.Unix(1715009999, 0)
	mock.ExpectQuery(`SELECT (.+) FROM vehicle_positions`).
		WithArgs("user-1", "veh-1", start, end).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewPositionRepo(db)
	_, err = repo.GetHistory(context.Background(), &domain.PositionHistoryQuery{
		UserID:    "user-1",
		VehicleID: "veh-1",
		Start:     start,
		End:       end,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}
