package repository

import (
	"errors"
	"time"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billRepository struct{}

func NewBillRepository() domainRepo.BillRepository {
	return &billRepository{}
}

func (r *billRepository) Create(db *gorm.DB, bill *entity.Bill) error {
	return db.Create(bill).Error
}

func (r *billRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bill, error) {
	return r.find(db, id)
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE so concurrent payments on
// the same bill serialise behind the first transaction.
func (r *billRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Bill, error) {
	return r.find(db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *billRepository) find(db *gorm.DB, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := db.Where("id = ?", id).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.BillSummary, error) {
	var bills []entity.BillSummary
	query := db.Table("bills").
		Select("bills.*, COALESCE(SUM(payments.amount), 0) AS paid_amount, " + patientNameSQL + " AS patient_name").
		Joins("JOIN patients ON patients.id = bills.patient_id").
		Joins("LEFT JOIN payments ON payments.bill_id = bills.id").
		Group("bills.id, patients.first_name, patients.last_name")
	if patientID != nil {
		query = query.Where("bills.patient_id = ?", *patientID)
	}
	err := query.Order("bills.bill_date DESC").Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BillStatus) error {
	return db.Model(&entity.Bill{}).Where("id = ?", id).Update("status", status).Error
}

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) FindByBillID(db *gorm.DB, billID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Where("bill_id = ?", billID).Order("payment_date ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) SumByBillID(db *gorm.DB, billID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&entity.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("bill_id = ?", billID).
		Row().Scan(&total)
	return total, err
}

func (r *paymentRepository) SumAll(db *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&entity.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	return total, err
}

func (r *paymentRepository) MonthlyTotals(db *gorm.DB, since time.Time) ([]entity.MonthlyRevenue, error) {
	var totals []entity.MonthlyRevenue
	if err := monthlyTotalsQuery(db, since, &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// monthlyTotalsQuery buckets payments by UTC calendar month whatever the
// session timezone is, matching the UTC window the dashboard builds.
func monthlyTotalsQuery(db *gorm.DB, since time.Time, dest *[]entity.MonthlyRevenue) *gorm.DB {
	return db.Model(&entity.Payment{}).
		Select("to_char(date_trunc('month', payment_date AT TIME ZONE 'UTC'), 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS total").
		Where("payment_date >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(dest)
}
