package service

import (
	"context"
	"sort"
	"time"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database"
)

// monthsShown bounds the per-month breakdowns to the recent past.
const monthsShown = 6

type StatisticsService struct {
	trips database.TripRepository
	fuel  database.FuelRepository
	costs database.CostRepository
}

func NewStatisticsService(trips database.TripRepository, fuel database.FuelRepository, costs database.CostRepository) *StatisticsService {
	return &StatisticsService{trips: trips, fuel: fuel, costs: costs}
}

func (s *StatisticsService) Snapshot(ctx context.Context, userID string) (*domain.StatisticsSnapshot, error) {
	trips, err := s.trips.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	fuel, err := s.fuel.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	costs, err := s.costs.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeStatistics(trips, fuel, costs, time.Now()), nil
}

// ComputeStatistics aggregates trips, fuel purchases and costs into a
// single snapshot. Active trips count toward trip totals but carry no
// distance yet.
func ComputeStatistics(trips []domain.Trip, fuel []domain.FuelRecord, costs []domain.Cost, asOf time.Time) *domain.StatisticsSnapshot {
	snap := &domain.StatisticsSnapshot{
		DistanceByVehicle: []domain.VehicleDistance{},
		CostByCategory:    []domain.CategoryCost{},
	}
	thisMonth := asOf.Format("2006-01")

	tripsByMonth := map[string]*domain.MonthlyTripStat{}
	distanceByVehicle := map[string]float64{}
	for _, t := range trips {
		snap.TotalTrips++
		var km float64
		if t.DistanceKM != nil {
			km = *t.DistanceKM
		}
		snap.TotalDistanceKM += km

		month := t.StartTime.Format("2006-01")
		if month == thisMonth {
			snap.TripsThisMonth++
			snap.DistanceThisMonthKM += km
		}
		st, ok := tripsByMonth[month]
		if !ok {
			st = &domain.MonthlyTripStat{Month: month}
			tripsByMonth[month] = st
		}
		st.Trips++
		st.DistanceKM += km

		if t.VehicleID != "" {
			distanceByVehicle[t.VehicleID] += km
		}
	}

	costsByMonth := map[string]*domain.MonthlyCostStat{}
	for _, f := range fuel {
		snap.FuelCostTotal += f.TotalAmount
		snap.FuelLitersTotal += f.FuelAmount

		month := f.Date.Format("2006-01")
		if month == thisMonth {
			snap.FuelCostThisMonth += f.TotalAmount
		}
		cs, ok := costsByMonth[month]
		if !ok {
			cs = &domain.MonthlyCostStat{Month: month}
			costsByMonth[month] = cs
		}
		cs.Fuel += f.TotalAmount
	}

	costByCategory := map[string]float64{}
	for _, c := range costs {
		snap.OtherCostTotal += c.Amount

		month := c.Date.Format("2006-01")
		if month == thisMonth {
			snap.OtherCostThisMonth += c.Amount
		}
		cs, ok := costsByMonth[month]
		if !ok {
			cs = &domain.MonthlyCostStat{Month: month}
			costsByMonth[month] = cs
		}
		cs.Costs += c.Amount

		costByCategory[c.Category] += c.Amount
	}

	snap.MonthlyTrips = lastMonths(tripsByMonth)
	snap.MonthlyCosts = lastMonths(costsByMonth)

	for id, km := range distanceByVehicle {
		snap.DistanceByVehicle = append(snap.DistanceByVehicle, domain.VehicleDistance{VehicleID: id, DistanceKM: km})
	}
	sort.Slice(snap.DistanceByVehicle, func(i, j int) bool {
		return snap.DistanceByVehicle[i].DistanceKM > snap.DistanceByVehicle[j].DistanceKM
	})

	for cat, sum := range costByCategory {
		snap.CostByCategory = append(snap.CostByCategory, domain.CategoryCost{Category: cat, Total: sum})
	}
	sort.Slice(snap.CostByCategory, func(i, j int) bool {
		return snap.CostByCategory[i].Total > snap.CostByCategory[j].Total
	})

	snap.CombinedCostTotal = snap.FuelCostTotal + snap.OtherCostTotal
	return snap
}

// lastMonths returns the most recent entries in month order, capped at
// monthsShown.
func lastMonths[T any](byMonth map[string]*T) []T {
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > monthsShown {
		keys = keys[len(keys)-monthsShown:]
	}
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byMonth[k])
	}
	return out
}
