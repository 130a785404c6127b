package usecase

import (
	"context"
	"errors"
	"time"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"
	"hms-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBillNotFound          = errors.New("bill not found")
	ErrBillCancelled         = errors.New("bill is cancelled")
	ErrInvalidBillAmount     = errors.New("bill total must be greater than zero")
	ErrInvalidPaymentAmount  = errors.New("payment amount must be greater than zero")
	ErrPaymentExceedsBalance = errors.New("payment amount exceeds bill total")
)

// MetricsCache is the dashboard snapshot store. Writes that move revenue
// invalidate it.
type MetricsCache interface {
	Load(ctx context.Context, dest interface{}) bool
	Store(ctx context.Context, snapshot interface{})
	Invalidate(ctx context.Context)
}

type BillingUsecase interface {
	ListBills(ctx context.Context) ([]dto.BillResponse, error)
	GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	CreateBill(ctx context.Context, actorUserID uuid.UUID, req *dto.CreateBillRequest) (*dto.BillResponse, error)
	CancelBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	ListPayments(ctx context.Context, billID uuid.UUID) ([]dto.PaymentResponse, error)
	CreatePayment(ctx context.Context, actorUserID uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
}

type billingUsecase struct {
	tx           database.Transactor
	log          *logrus.Logger
	billRepo     repository.BillRepository
	paymentRepo  repository.PaymentRepository
	patientRepo  repository.PatientRepository
	events       service.EventRecorder
	metricsCache MetricsCache
	now          func() time.Time
}

func NewBillingUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	patientRepo repository.PatientRepository,
	events service.EventRecorder,
	metricsCache MetricsCache,
) BillingUsecase {
	return &billingUsecase{
		tx:           tx,
		log:          log,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		patientRepo:  patientRepo,
		events:       events,
		metricsCache: metricsCache,
		now:          time.Now,
	}
}

func (u *billingUsecase) ListBills(ctx context.Context) ([]dto.BillResponse, error) {
	bills, err := u.billRepo.FindAll(u.tx.Conn(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to list bills: %+v", err)
		return nil, err
	}

	return converter.BillSummariesToResponses(bills, u.now()), nil
}

func (u *billingUsecase) GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	db := u.tx.Conn(ctx)

	bill, err := u.billRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find bill: %+v", err)
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	paid, err := u.paymentRepo.SumByBillID(db, id)
	if err != nil {
		u.log.Warnf("Failed to sum payments: %+v", err)
		return nil, err
	}

	return converter.BillToResponse(bill, paid, u.now()), nil
}

func (u *billingUsecase) CreateBill(ctx context.Context, actorUserID uuid.UUID, req *dto.CreateBillRequest) (*dto.BillResponse, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, ErrInvalidBillAmount
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		PatientID:   req.PatientID,
		BillDate:    u.now(),
		TotalAmount: req.TotalAmount,
		Status:      entity.BillStatusPending,
		DueDate:     dueDate,
		Description: req.Description,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := u.billRepo.Create(tx, bill); err != nil {
			u.log.Warnf("Failed to create bill: %+v", err)
			return err
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventBillGenerated,
			PatientID:   bill.PatientID,
			RelatedID:   &bill.ID,
			ActorUserID: &actorUserID,
			Title:       "Bill generated",
			Description: bill.Description,
			Metadata:    entity.JSON{"total_amount": bill.TotalAmount.StringFixed(2)},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Bill created: %s (patient=%s, total=%s)", bill.ID, bill.PatientID, bill.TotalAmount)
	return converter.BillToResponse(bill, decimal.Zero, u.now()), nil
}

func (u *billingUsecase) CancelBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	var (
		bill *entity.Bill
		paid = decimal.Zero
	)

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		bill, err = u.billRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			u.log.Warnf("Failed to lock bill: %+v", err)
			return err
		}
		if bill == nil {
			return ErrBillNotFound
		}
		if bill.IsCancelled() {
			return ErrBillCancelled
		}

		paid, err = u.paymentRepo.SumByBillID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to sum payments: %+v", err)
			return err
		}

		bill.Cancel()
		if err := u.billRepo.UpdateStatus(tx, id, bill.Status); err != nil {
			u.log.Warnf("Failed to cancel bill: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Bill cancelled: %s", id)
	return converter.BillToResponse(bill, paid, u.now()), nil
}

func (u *billingUsecase) ListPayments(ctx context.Context, billID uuid.UUID) ([]dto.PaymentResponse, error) {
	db := u.tx.Conn(ctx)

	bill, err := u.billRepo.FindByID(db, billID)
	if err != nil {
		u.log.Warnf("Failed to find bill: %+v", err)
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	payments, err := u.paymentRepo.FindByBillID(db, billID)
	if err != nil {
		u.log.Warnf("Failed to list payments: %+v", err)
		return nil, err
	}

	return converter.PaymentsToResponses(payments), nil
}

// CreatePayment records money against a bill. The bill row is locked for
// the whole check-then-insert so concurrent payments against the same bill
// serialize, and the sum of payments never exceeds the bill total.
func (u *billingUsecase) CreatePayment(ctx context.Context, actorUserID uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	payment := &entity.Payment{
		BillID:        req.BillID,
		PaymentDate:   u.now(),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		bill, err := u.billRepo.FindByIDForUpdate(tx, req.BillID)
		if err != nil {
			u.log.Warnf("Failed to lock bill: %+v", err)
			return err
		}
		if bill == nil {
			return ErrBillNotFound
		}
		if bill.IsCancelled() {
			return ErrBillCancelled
		}

		paid, err := u.paymentRepo.SumByBillID(tx, bill.ID)
		if err != nil {
			u.log.Warnf("Failed to sum payments: %+v", err)
			return err
		}
		if !bill.Accepts(paid, req.Amount) {
			return ErrPaymentExceedsBalance
		}

		if err := u.paymentRepo.Create(tx, payment); err != nil {
			u.log.Warnf("Failed to create payment: %+v", err)
			return err
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventPaymentReceived,
			PatientID:   bill.PatientID,
			RelatedID:   &payment.ID,
			ActorUserID: &actorUserID,
			Title:       "Payment received",
			Description: "Payment via " + payment.PaymentMethod,
			Metadata: entity.JSON{
				"bill_id": bill.ID.String(),
				"amount":  payment.Amount.StringFixed(2),
				"balance": bill.Balance(paid.Add(payment.Amount)).StringFixed(2),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metricsCache.Invalidate(ctx)

	u.log.Infof("Payment recorded: %s (bill=%s, amount=%s)", payment.ID, payment.BillID, payment.Amount)
	return converter.PaymentToResponse(payment), nil
}
