package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type billingFixture struct {
	usecase  *billingUsecase
	bills    *stubBillRepo
	payments *stubPaymentRepo
	recorder *stubRecorder
	cache    *stubCache
	patient  *entity.Patient
}

func newBillingFixture(bills ...*entity.Bill) *billingFixture {
	tx := &stubTransactor{}
	patient := &entity.Patient{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"}

	f := &billingFixture{
		bills:    newStubBillRepo(bills...),
		payments: &stubPaymentRepo{tx: tx},
		recorder: &stubRecorder{},
		cache:    &stubCache{},
		patient:  patient,
	}
	f.usecase = NewBillingUsecase(tx, testLogger(), f.bills, f.payments, newStubPatientRepo(patient), f.recorder, f.cache).(*billingUsecase)
	return f
}

func newBill(total string) *entity.Bill {
	return &entity.Bill{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		BillDate:    time.Now(),
		TotalAmount: decimal.RequireFromString(total),
		Status:      entity.BillStatusPending,
	}
}

func pay(billID uuid.UUID, amount string) *dto.CreatePaymentRequest {
	return &dto.CreatePaymentRequest{
		BillID:        billID,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: "cash",
	}
}

func TestCreatePayment_RejectsOverpayment(t *testing.T) {
	bill := newBill("1000")
	f := newBillingFixture(bill)
	ctx := context.Background()
	actor := uuid.New()

	_, err := f.usecase.CreatePayment(ctx, actor, pay(bill.ID, "600"))
	require.NoError(t, err)

	_, err = f.usecase.CreatePayment(ctx, actor, pay(bill.ID, "500"))
	assert.ErrorIs(t, err, ErrPaymentExceedsBalance)
	assert.Len(t, f.payments.payments, 1, "rejected payment must not be stored")

	_, err = f.usecase.CreatePayment(ctx, actor, pay(bill.ID, "400"))
	require.NoError(t, err)

	resp, err := f.usecase.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1000").Equal(resp.PaidAmount))
	assert.True(t, resp.Balance.IsZero())
	assert.Equal(t, string(entity.BillStatusPaid), resp.Status)

	assert.Equal(t, []entity.EventType{entity.EventPaymentReceived, entity.EventPaymentReceived}, f.recorder.eventTypes())
	assert.Equal(t, 2, f.cache.invalidated)
}

func TestCreatePayment_ExactBalanceAccepted(t *testing.T) {
	bill := newBill("250.50")
	f := newBillingFixture(bill)

	resp, err := f.usecase.CreatePayment(context.Background(), uuid.New(), pay(bill.ID, "250.50"))
	require.NoError(t, err)
	assert.Equal(t, bill.ID, resp.BillID)
	assert.Equal(t, bill.PatientID, f.recorder.events[0].PatientID)
}

func TestCreatePayment_BillNotFound(t *testing.T) {
	f := newBillingFixture()

	_, err := f.usecase.CreatePayment(context.Background(), uuid.New(), pay(uuid.New(), "10"))
	assert.ErrorIs(t, err, ErrBillNotFound)
	assert.Empty(t, f.payments.payments)
	assert.Zero(t, f.cache.invalidated)
}

func TestCreatePayment_NonPositiveAmount(t *testing.T) {
	bill := newBill("100")
	f := newBillingFixture(bill)

	for _, amount := range []string{"0", "-5"} {
		_, err := f.usecase.CreatePayment(context.Background(), uuid.New(), pay(bill.ID, amount))
		assert.ErrorIs(t, err, ErrInvalidPaymentAmount, amount)
	}
	assert.Zero(t, f.bills.locked, "amount is checked before the bill is locked")
	assert.Empty(t, f.payments.payments)
}

func TestCreatePayment_CancelledBill(t *testing.T) {
	bill := newBill("100")
	bill.Status = entity.BillStatusCancelled
	f := newBillingFixture(bill)

	_, err := f.usecase.CreatePayment(context.Background(), uuid.New(), pay(bill.ID, "10"))
	assert.ErrorIs(t, err, ErrBillCancelled)
	assert.Empty(t, f.payments.payments)
}

func TestCreatePayment_SumNeverExceedsTotal(t *testing.T) {
	bill := newBill("1000")
	f := newBillingFixture(bill)
	ctx := context.Background()

	amounts := []string{"300", "800", "250.25", "0.01", "500", "449.74", "0.01", "1"}
	for _, amount := range amounts {
		_, _ = f.usecase.CreatePayment(ctx, uuid.New(), pay(bill.ID, amount))

		paid, err := f.payments.SumByBillID(nil, bill.ID)
		require.NoError(t, err)
		assert.True(t, paid.LessThanOrEqual(bill.TotalAmount), "paid %s after %s", paid, amount)
	}

	paid, _ := f.payments.SumByBillID(nil, bill.ID)
	assert.True(t, decimal.RequireFromString("1000").Equal(paid))
}

func TestCreatePayment_ConcurrentPaymentsSerialize(t *testing.T) {
	bill := newBill("1000")
	f := newBillingFixture(bill)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.usecase.CreatePayment(context.Background(), uuid.New(), pay(bill.ID, "200")); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	paid, _ := f.payments.SumByBillID(nil, bill.ID)
	assert.True(t, bill.TotalAmount.Equal(paid))
}

func TestCreateBill(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	_, err := f.usecase.CreateBill(ctx, uuid.New(), &dto.CreateBillRequest{
		PatientID:   f.patient.ID,
		TotalAmount: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidBillAmount)

	_, err = f.usecase.CreateBill(ctx, uuid.New(), &dto.CreateBillRequest{
		PatientID:   uuid.New(),
		TotalAmount: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	resp, err := f.usecase.CreateBill(ctx, uuid.New(), &dto.CreateBillRequest{
		PatientID:   f.patient.ID,
		TotalAmount: decimal.NewFromInt(50),
		DueDate:     "2099-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.BillStatusPending), resp.Status)
	assert.True(t, resp.PaidAmount.IsZero())
	assert.Equal(t, "2099-01-31", resp.DueDate)
	assert.Equal(t, []entity.EventType{entity.EventBillGenerated}, f.recorder.eventTypes())
}

func TestCreateBill_InvalidDueDate(t *testing.T) {
	f := newBillingFixture()

	_, err := f.usecase.CreateBill(context.Background(), uuid.New(), &dto.CreateBillRequest{
		PatientID:   f.patient.ID,
		TotalAmount: decimal.NewFromInt(50),
		DueDate:     "31/01/2099",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestCancelBill(t *testing.T) {
	bill := newBill("100")
	f := newBillingFixture(bill)
	ctx := context.Background()

	resp, err := f.usecase.CancelBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BillStatusCancelled), resp.Status)

	_, err = f.usecase.CancelBill(ctx, bill.ID)
	assert.ErrorIs(t, err, ErrBillCancelled)

	_, err = f.usecase.CancelBill(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestListPayments_UnknownBill(t *testing.T) {
	f := newBillingFixture()

	_, err := f.usecase.ListPayments(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBillNotFound)
}
