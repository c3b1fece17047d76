package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kamatt66/fahrtenbuch-pro-gps/internal/observability"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/scanning"
)

type FuelService struct {
	repo       database.FuelRepository
	recognizer scanning.Recognizer
	logger     *slog.Logger
}

func NewFuelService(repo database.FuelRepository, recognizer scanning.Recognizer, logger *slog.Logger) *FuelService {
	return &FuelService{repo: repo, recognizer: recognizer, logger: logger}
}

func (s *FuelService) List(ctx context.Context, userID string) ([]domain.FuelRecord, error) {
	return s.repo.List(ctx, userID)
}

func (s *FuelService) Create(ctx context.Context, r *domain.FuelRecord) error {
	if err := validateFuelRecord(r); err != nil {
		return err
	}

	now := time.Now()
	r.ID = uuid.NewString()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.repo.Insert(ctx, r)
}

func (s *FuelService) Update(ctx context.Context, r *domain.FuelRecord) error {
	if r.ID == "" {
		return fmt.Errorf("id: required")
	}
	if err := validateFuelRecord(r); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	return s.repo.Update(ctx, r)
}

func (s *FuelService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// ScanReceipt runs text recognition on a receipt photo and extracts
// the purchase fields from the recognized text. The second return
// value reports whether anything usable was found; a receipt the
// parser cannot make sense of is not an error.
func (s *FuelService) ScanReceipt(ctx context.Context, img []byte) (domain.ExtractedReceiptData, bool, error) {
	if s.recognizer == nil {
		return domain.ExtractedReceiptData{}, false, fmt.Errorf("receipt scanning is not configured")
	}

	text, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		observability.ReceiptScans.WithLabelValues("failed").Inc()
		return domain.ExtractedReceiptData{}, false, fmt.Errorf("recognize receipt: %w", err)
	}

	data := scanning.ParseReceipt(text)
	if data.Empty() {
		observability.ReceiptScans.WithLabelValues("empty").Inc()
		s.logger.InfoContext(ctx, "receipt scan found no usable fields", "text_len", len(text))
		return data, false, nil
	}
	observability.ReceiptScans.WithLabelValues("ok").Inc()
	return data, true, nil
}

func validateFuelRecord(r *domain.FuelRecord) error {
	if r.GasStation == "" {
		return fmt.Errorf("gas_station: required")
	}
	if r.FuelType == "" {
		return fmt.Errorf("fuel_type: required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date: required")
	}
	if r.FuelAmount <= 0 {
		return fmt.Errorf("fuel_amount: must be positive")
	}
	if r.PricePerLiter <= 0 {
		return fmt.Errorf("price_per_liter: must be positive")
	}
	if r.TotalAmount <= 0 {
		return fmt.Errorf("total_amount: must be positive")
	}
	return nil
}
