package service

import (
	"testing"
	"time"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

func TestComputeStatisticsEmptyInput(t *testing.T) {
	snap := ComputeStatistics(nil, nil, nil, time.Now())

	if snap.TotalTrips != 0 || snap.TotalDistanceKM != 0 || snap.CombinedCostTotal != 0 {
		t.Fatalf("expected zero totals, got %+v", snap)
	}
	if snap.MonthlyTrips == nil && len(snap.MonthlyTrips) != 0 {
		t.Fatal("expected empty monthly breakdown")
	}
}

func TestComputeStatisticsTotalsAndThisMonth(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	trips := []domain.Trip{
		{VehicleID: "veh-1", StartTime: asOf.AddDate(0, 0, -1), DistanceKM: floatPtr(100)},
		{VehicleID: "veh-1", StartTime: asOf.AddDate(0, -1, 0), DistanceKM: floatPtr(50)},
		{VehicleID: "veh-2", StartTime: asOf.AddDate(0, 0, -2), DistanceKM: floatPtr(30)},
		// Active trip without a distance yet.
		{VehicleID: "veh-1", StartTime: asOf, IsActive: true},
	}
	fuel := []domain.FuelRecord{
		{Date: asOf.AddDate(0, 0, -1), TotalAmount: 60, FuelAmount: 40},
		{Date: asOf.AddDate(0, -2, 0), TotalAmount: 55, FuelAmount: 38},
	}
	costs := []domain.Cost{
		{Category: "Wartung", Amount: 200, Date: asOf.AddDate(0, 0, -3)},
		{Category: "Versicherung", Amount: 80, Date: asOf.AddDate(0, -1, 0)},
		{Category: "Wartung", Amount: 40, Date: asOf.AddDate(0, -1, 0)},
	}

	snap := ComputeStatistics(trips, fuel, costs, asOf)

	if snap.TotalTrips != 4 {
		t.Fatalf("total trips = %d, want 4", snap.TotalTrips)
	}
	if snap.TotalDistanceKM != 180 {
		t.Fatalf("total distance = %f, want 180", snap.TotalDistanceKM)
	}
	if snap.TripsThisMonth != 3 {
		t.Fatalf("trips this month = %d, want 3", snap.TripsThisMonth)
	}
	if snap.DistanceThisMonthKM != 130 {
		t.Fatalf("distance this month = %f, want 130", snap.DistanceThisMonthKM)
	}
	if snap.FuelCostTotal != 115 || snap.FuelCostThisMonth != 60 {
		t.Fatalf("fuel costs = %f / %f, want 115 / 60", snap.FuelCostTotal, snap.FuelCostThisMonth)
	}
	if snap.FuelLitersTotal != 78 {
		t.Fatalf("fuel liters = %f, want 78", snap.FuelLitersTotal)
	}
	if snap.OtherCostTotal != 320 || snap.OtherCostThisMonth != 200 {
		t.Fatalf("other costs = %f / %f, want 320 / 200", snap.OtherCostTotal, snap.OtherCostThisMonth)
	}
	if snap.CombinedCostTotal != 435 {
		t.Fatalf("combined costs = %f, want 435", snap.CombinedCostTotal)
	}
}

func TestComputeStatisticsDistanceByVehicle(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	trips := []domain.Trip{
		{VehicleID: "veh-1", StartTime: asOf, DistanceKM: floatPtr(10)},
		{VehicleID: "veh-2", StartTime: asOf, DistanceKM: floatPtr(70)},
		{VehicleID: "veh-1", StartTime: asOf, DistanceKM: floatPtr(20)},
		// Manual trip without a vehicle is not attributed.
		{StartTime: asOf, DistanceKM: floatPtr(5)},
	}

	snap := ComputeStatistics(trips, nil, nil, asOf)

	if len(snap.DistanceByVehicle) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(snap.DistanceByVehicle))
	}
	if snap.DistanceByVehicle[0].VehicleID != "veh-2" || snap.DistanceByVehicle[0].DistanceKM != 70 {
		t.Fatalf("expected veh-2 first with 70 km, got %+v", snap.DistanceByVehicle[0])
	}
	if snap.DistanceByVehicle[1].VehicleID != "veh-1" || snap.DistanceByVehicle[1].DistanceKM != 30 {
		t.Fatalf("expected veh-1 with 30 km, got %+v", snap.DistanceByVehicle[1])
	}
}

func TestComputeStatisticsCostByCategory(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	costs := []domain.Cost{
		{Category: "Wartung", Amount: 50, Date: asOf},
		{Category: "Reparatur", Amount: 300, Date: asOf},
		{Category: "Wartung", Amount: 25, Date: asOf},
	}

	snap := ComputeStatistics(nil, nil, costs, asOf)

	if len(snap.CostByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(snap.CostByCategory))
	}
	if snap.CostByCategory[0].Category != "Reparatur" || snap.CostByCategory[0].Total != 300 {
		t.Fatalf("expected Reparatur first with 300, got %+v", snap.CostByCategory[0])
	}
	if snap.CostByCategory[1].Category != "Wartung" || snap.CostByCategory[1].Total != 75 {
		t.Fatalf("expected Wartung with 75, got %+v", snap.CostByCategory[1])
	}
}

func TestComputeStatisticsMonthlyBreakdownCapped(t *testing.T) {
	asOf := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)
	var trips []domain.Trip
	for i := 0; i < 10; i++ {
		trips = append(trips, domain.Trip{
			StartTime:  asOf.AddDate(0, -i, 0),
			DistanceKM: floatPtr(10),
		})
	}

	snap := ComputeStatistics(trips, nil, nil, asOf)

	if len(snap.MonthlyTrips) != monthsShown {
		t.Fatalf("expected %d months, got %d", monthsShown, len(snap.MonthlyTrips))
	}
	// Most recent months survive, in ascending order.
	if first := snap.MonthlyTrips[0].Month; first != "2024-07" {
		t.Fatalf("expected oldest surviving month 2024-07, got %q", first)
	}
	if last := snap.MonthlyTrips[len(snap.MonthlyTrips)-1].Month; last != "2024-12" {
		t.Fatalf("expected newest month 2024-12, got %q", last)
	}
}
