package domain

type MonthlyTripStat struct {
	Month      string  `json:"month"` // YYYY-MM
	Trips      int     `json:"trips"`
	DistanceKM float64 `json:"distance_km"`
}

type MonthlyCostStat struct {
	Month string  `json:"month"`
	Costs float64 `json:"costs"`
	Fuel  float64 `json:"fuel"`
}

type VehicleDistance struct {
	VehicleID  string  `json:"vehicle_id"`
	DistanceKM float64 `json:"distance_km"`
}

type CategoryCost struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type StatisticsSnapshot struct {
	TotalTrips          int     `json:"total_trips"`
	TripsThisMonth      int     `json:"trips_this_month"`
	TotalDistanceKM     float64 `json:"total_distance_km"`
	DistanceThisMonthKM float64 `json:"distance_this_month_km"`

	FuelCostTotal     float64 `json:"fuel_cost_total"`
	FuelCostThisMonth float64 `json:"fuel_cost_this_month"`
	FuelLitersTotal   float64 `json:"fuel_liters_total"`

	OtherCostTotal     float64 `json:"other_cost_total"`
	OtherCostThisMonth float64 `json:"other_cost_this_month"`
	CombinedCostTotal  float64 `json:"combined_cost_total"`

	MonthlyTrips      []MonthlyTripStat `json:"monthly_trips"`
	MonthlyCosts      []MonthlyCostStat `json:"monthly_costs"`
	DistanceByVehicle []VehicleDistance `json:"distance_by_vehicle"`
	CostByCategory    []CategoryCost    `json:"cost_by_category"`
}
