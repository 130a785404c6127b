package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"hms-backend/internal/domain/entity"
	"hms-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubTransactor runs fn directly. Repositories in these tests ignore the
// handle, so a nil *gorm.DB is enough. A failing fn discards the writes the
// stubs staged during the call.
type stubTransactor struct {
	mu        sync.Mutex
	rollbacks []func()
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollbacks = nil
	if err := fn(nil); err != nil {
		for i := len(t.rollbacks) - 1; i >= 0; i-- {
			t.rollbacks[i]()
		}
		return err
	}
	return nil
}

func (t *stubTransactor) Conn(ctx context.Context) *gorm.DB {
	return nil
}

func (t *stubTransactor) onRollback(undo func()) {
	t.rollbacks = append(t.rollbacks, undo)
}

// Patients

type stubPatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newStubPatientRepo(patients ...*entity.Patient) *stubPatientRepo {
	r := &stubPatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *stubPatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = patient
	return nil
}

func (r *stubPatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.patients[id], nil
}

func (r *stubPatientRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubPatientRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error) {
	return nil, nil
}

func (r *stubPatientRepo) Update(db *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *stubPatientRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.patients[id]; !ok {
		return 0, nil
	}
	delete(r.patients, id)
	return 1, nil
}

func (r *stubPatientRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.patients)), nil
}

// Bills and payments

type stubBillRepo struct {
	bills  map[uuid.UUID]*entity.Bill
	locked int
}

func newStubBillRepo(bills ...*entity.Bill) *stubBillRepo {
	r := &stubBillRepo{bills: map[uuid.UUID]*entity.Bill{}}
	for _, b := range bills {
		r.bills[b.ID] = b
	}
	return r
}

func (r *stubBillRepo) Create(db *gorm.DB, bill *entity.Bill) error {
	bill.ID = uuid.New()
	r.bills[bill.ID] = bill
	return nil
}

func (r *stubBillRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *stubBillRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Bill, error) {
	r.locked++
	return r.FindByID(db, id)
}

func (r *stubBillRepo) FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.BillSummary, error) {
	var out []entity.BillSummary
	for _, b := range r.bills {
		if patientID == nil || b.PatientID == *patientID {
			out = append(out, entity.BillSummary{Bill: *b})
		}
	}
	return out, nil
}

func (r *stubBillRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BillStatus) error {
	r.bills[id].Status = status
	return nil
}

type stubPaymentRepo struct {
	tx       *stubTransactor
	payments []entity.Payment
}

func (r *stubPaymentRepo) Create(db *gorm.DB, payment *entity.Payment) error {
	payment.ID = uuid.New()
	r.payments = append(r.payments, *payment)
	n := len(r.payments)
	r.tx.onRollback(func() { r.payments = r.payments[:n-1] })
	return nil
}

func (r *stubPaymentRepo) FindByBillID(db *gorm.DB, billID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.BillID == billID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SumByBillID(db *gorm.DB, billID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.BillID == billID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *stubPaymentRepo) SumAll(db *gorm.DB) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

func (r *stubPaymentRepo) MonthlyTotals(db *gorm.DB, since time.Time) ([]entity.MonthlyRevenue, error) {
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, p := range r.payments {
		if p.PaymentDate.Before(since) {
			continue
		}
		key := p.PaymentDate.UTC().Format("2006-01")
		if _, ok := totals[key]; !ok {
			order = append(order, key)
			totals[key] = decimal.Zero
		}
		totals[key] = totals[key].Add(p.Amount)
	}
	out := make([]entity.MonthlyRevenue, 0, len(order))
	for _, k := range order {
		out = append(out, entity.MonthlyRevenue{Month: k, Total: totals[k]})
	}
	return out, nil
}

// Events

type stubRecorder struct {
	events        []service.PatientEventInput
	notifications []service.NotificationInput
}

func (r *stubRecorder) Record(ctx context.Context, tx *gorm.DB, input service.PatientEventInput) (*entity.PatientEvent, error) {
	r.events = append(r.events, input)
	return &entity.PatientEvent{ID: uuid.New(), PatientID: input.PatientID, EventType: input.EventType}, nil
}

func (r *stubRecorder) Notify(ctx context.Context, tx *gorm.DB, input service.NotificationInput) (*entity.Notification, error) {
	r.notifications = append(r.notifications, input)
	return &entity.Notification{ID: uuid.New(), UserID: input.UserID, Title: input.Title}, nil
}

func (r *stubRecorder) eventTypes() []entity.EventType {
	out := make([]entity.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

// Cache

type stubCache struct {
	mu          sync.Mutex
	stored      interface{}
	invalidated int
}

func (c *stubCache) Load(ctx context.Context, dest interface{}) bool {
	return false
}

func (c *stubCache) Store(ctx context.Context, snapshot interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = snapshot
}

func (c *stubCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
}
