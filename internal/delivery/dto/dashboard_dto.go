package dto

import "github.com/shopspring/decimal"

type RevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DepartmentPoint struct {
	Name     string `json:"name"`
	Patients int64  `json:"patients"`
}

type OccupancyPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardMetrics is the admin overview; every figure is computed from
// stored data.
type DashboardMetrics struct {
	TotalRevenue        decimal.Decimal   `json:"total_revenue"`
	ActivePatients      int64             `json:"active_patients"`
	BedOccupancy        int               `json:"bed_occupancy"`
	PendingAppointments int64             `json:"pending_appointments"`
	RevenueData         []RevenuePoint    `json:"revenue_data"`
	DepartmentData      []DepartmentPoint `json:"department_data"`
	OccupancyData       []OccupancyPoint  `json:"occupancy_data"`
}
