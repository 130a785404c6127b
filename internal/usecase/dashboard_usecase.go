package usecase

import (
	"context"
	"math"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// revenueMonths is how many calendar months the revenue chart covers,
// including the current one.
const revenueMonths = 6

type DashboardUsecase interface {
	GetMetrics(ctx context.Context) (*dto.DashboardMetrics, error)
}

type dashboardUsecase struct {
	tx              database.Transactor
	log             *logrus.Logger
	paymentRepo     repository.PaymentRepository
	patientRepo     repository.PatientRepository
	bedRepo         repository.BedRepository
	appointmentRepo repository.AppointmentRepository
	metricsCache    MetricsCache
	now             func() time.Time
}

func NewDashboardUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	paymentRepo repository.PaymentRepository,
	patientRepo repository.PatientRepository,
	bedRepo repository.BedRepository,
	appointmentRepo repository.AppointmentRepository,
	metricsCache MetricsCache,
) DashboardUsecase {
	return &dashboardUsecase{
		tx:              tx,
		log:             log,
		paymentRepo:     paymentRepo,
		patientRepo:     patientRepo,
		bedRepo:         bedRepo,
		appointmentRepo: appointmentRepo,
		metricsCache:    metricsCache,
		now:             time.Now,
	}
}

// GetMetrics computes the admin overview from stored data. The aggregate
// queries are independent and run concurrently; the result is cached until
// a write that moves revenue, occupancy, or appointments invalidates it.
func (u *dashboardUsecase) GetMetrics(ctx context.Context) (*dto.DashboardMetrics, error) {
	var cached dto.DashboardMetrics
	if u.metricsCache.Load(ctx, &cached) {
		return &cached, nil
	}

	// Revenue months are UTC calendar months, as grouped by the payment query.
	now := u.now().UTC()
	y, m, _ := now.Date()
	firstMonth := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(revenueMonths - 1), 0)

	var (
		totalRevenue decimal.Decimal
		patients     int64
		occupancy    *entity.BedOccupancy
		pending      int64
		monthly      []entity.MonthlyRevenue
		departments  []entity.DepartmentLoad
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		totalRevenue, err = u.paymentRepo.SumAll(u.tx.Conn(ctx))
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		patients, err = u.patientRepo.Count(u.tx.Conn(ctx))
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		occupancy, err = u.bedRepo.Occupancy(u.tx.Conn(ctx))
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		pending, err = u.appointmentRepo.CountByStatus(u.tx.Conn(ctx), entity.AppointmentStatusScheduled)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		monthly, err = u.paymentRepo.MonthlyTotals(u.tx.Conn(ctx), firstMonth)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		departments, err = u.appointmentRepo.PatientsByDepartment(u.tx.Conn(ctx))
		return err
	})
	if err := p.Wait(); err != nil {
		u.log.Warnf("Failed to compute dashboard metrics: %+v", err)
		return nil, err
	}

	occupiedPct := occupancyPercent(occupancy)
	metrics := &dto.DashboardMetrics{
		TotalRevenue:        totalRevenue,
		ActivePatients:      patients,
		BedOccupancy:        occupiedPct,
		PendingAppointments: pending,
		RevenueData:         revenueSeries(firstMonth, monthly),
		DepartmentData:      make([]dto.DepartmentPoint, 0, len(departments)),
		OccupancyData: []dto.OccupancyPoint{
			{Name: "Occupied", Value: occupiedPct},
			{Name: "Available", Value: 100 - occupiedPct},
		},
	}
	for _, d := range departments {
		metrics.DepartmentData = append(metrics.DepartmentData, dto.DepartmentPoint{
			Name:     d.Department,
			Patients: d.Patients,
		})
	}

	u.metricsCache.Store(ctx, metrics)
	return metrics, nil
}

// occupancyPercent rounds occupied beds to a whole percentage. No beds
// means zero occupancy.
func occupancyPercent(o *entity.BedOccupancy) int {
	if o == nil || o.Total == 0 {
		return 0
	}
	return int(math.Round(float64(o.Occupied) * 100 / float64(o.Total)))
}

// revenueSeries lays the monthly totals over a fixed window starting at
// from, oldest first. Months without payments report zero.
func revenueSeries(from time.Time, totals []entity.MonthlyRevenue) []dto.RevenuePoint {
	byMonth := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = t.Total
	}

	series := make([]dto.RevenuePoint, 0, revenueMonths)
	for i := 0; i < revenueMonths; i++ {
		month := from.AddDate(0, i, 0)
		key := month.Format("2006-01")
		total, ok := byMonth[key]
		if !ok {
			total = decimal.Zero
		}
		series = append(series, dto.RevenuePoint{
			Month:   month.Format("Jan"),
			Revenue: total,
		})
	}
	return series
}
