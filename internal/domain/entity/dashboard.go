package entity

import "github.com/shopspring/decimal"

// MonthlyRevenue is the sum of payments received in one calendar month.
type MonthlyRevenue struct {
	Month string // YYYY-MM
	Total decimal.Decimal
}

// DepartmentLoad counts distinct patients seen by a department's doctors.
type DepartmentLoad struct {
	Department string
	Patients   int64
}

// BedOccupancy is the count of beds per status.
type BedOccupancy struct {
	Total    int64
	Occupied int64
}
