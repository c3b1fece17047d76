package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type mockFuelRepo struct {
	listFn   func(ctx context.Context, userID string) ([]domain.FuelRecord, error)
	insertFn func(ctx context.Context, r *domain.FuelRecord) error
	updateFn func(ctx context.Context, r *domain.FuelRecord) error
	deleteFn func(ctx context.Context, userID, id string) error
}

func (m *mockFuelRepo) List(ctx context.Context, userID string) ([]domain.FuelRecord, error) {
	return m.listFn(ctx, userID)
}

func (m *mockFuelRepo) Insert(ctx context.Context, r *domain.FuelRecord) error {
	return m.insertFn(ctx, r)
}

func (m *mockFuelRepo) Update(ctx context.Context, r *domain.FuelRecord) error {
	return m.updateFn(ctx, r)
}

func (m *mockFuelRepo) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

type mockRecognizer struct {
	text string
	err  error
}

func (m *mockRecognizer) Recognize(context.Context, []byte) (string, error) {
	return m.text, m.err
}

func (m *mockRecognizer) Close() error { return nil }

func TestFuelCreateAssignsIDAndTimestamps(t *testing.T) {
	var inserted *domain.FuelRecord
	repo := &mockFuelRepo{
		insertFn: func(_ context.Context, r *domain.FuelRecord) error {
			inserted = r
			return nil
		},
	}
	svc := NewFuelService(repo, nil, discardLogger())

	rec := &domain.FuelRecord{
		GasStation:    "SHELL",
		FuelType:      "Diesel",
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		FuelAmount:    40,
		PricePerLiter: 1.5,
		TotalAmount:   60,
	}
	if err := svc.Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if inserted == nil || inserted.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if inserted.CreatedAt.IsZero() || inserted.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestFuelCreateValidation(t *testing.T) {
	svc := NewFuelService(&mockFuelRepo{}, nil, discardLogger())
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rec  domain.FuelRecord
	}{
		{"missing station", domain.FuelRecord{FuelType: "Diesel", Date: date, FuelAmount: 40, PricePerLiter: 1.5, TotalAmount: 60}},
		{"missing fuel type", domain.FuelRecord{GasStation: "SHELL", Date: date, FuelAmount: 40, PricePerLiter: 1.5, TotalAmount: 60}},
		{"missing date", domain.FuelRecord{GasStation: "SHELL", FuelType: "Diesel", FuelAmount: 40, PricePerLiter: 1.5, TotalAmount: 60}},
		{"zero amount", domain.FuelRecord{GasStation: "SHELL", FuelType: "Diesel", Date: date, PricePerLiter: 1.5, TotalAmount: 60}},
		{"zero price", domain.FuelRecord{GasStation: "SHELL", FuelType: "Diesel", Date: date, FuelAmount: 40, TotalAmount: 60}},
		{"zero total", domain.FuelRecord{GasStation: "SHELL", FuelType: "Diesel", Date: date, FuelAmount: 40, PricePerLiter: 1.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			if err := svc.Create(context.Background(), &rec); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestScanReceiptExtractsFields(t *testing.T) {
	rec := &mockRecognizer{text: "SHELL Tankstelle\n15.03.2024\nDiesel\n40,00 L\n1,509 €/L\nSumme 60,36 €"}
	svc := NewFuelService(&mockFuelRepo{}, rec, discardLogger())

	data, recognized, err := svc.ScanReceipt(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !recognized {
		t.Fatal("expected the receipt to be recognized")
	}
	if data.GasStation != "SHELL Tankstelle" {
		t.Fatalf("unexpected station %q", data.GasStation)
	}
	if data.TotalAmount != 60.36 {
		t.Fatalf("unexpected total %f", data.TotalAmount)
	}
}

// An unreadable receipt is not an error; the caller falls back to
// manual entry.
func TestScanReceiptUnreadableTextIsNotAnError(t *testing.T) {
	rec := &mockRecognizer{text: "xxxx yyyy zzzz"}
	svc := NewFuelService(&mockFuelRepo{}, rec, discardLogger())

	data, recognized, err := svc.ScanReceipt(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if recognized {
		t.Fatal("expected nothing to be recognized")
	}
	if !data.Empty() {
		t.Fatalf("expected empty extraction, got %+v", data)
	}
}

func TestScanReceiptRecognizerError(t *testing.T) {
	rec := &mockRecognizer{err: fmt.Errorf("engine crashed")}
	svc := NewFuelService(&mockFuelRepo{}, rec, discardLogger())

	if _, _, err := svc.ScanReceipt(context.Background(), []byte("image")); err == nil {
		t.Fatal("expected a recognition error")
	}
}

func TestScanReceiptWithoutRecognizer(t *testing.T) {
	svc := NewFuelService(&mockFuelRepo{}, nil, discardLogger())
	if _, _, err := svc.ScanReceipt(context.Background(), []byte("image")); err == nil {
		t.Fatal("expected an error when scanning is not configured")
	}
}
