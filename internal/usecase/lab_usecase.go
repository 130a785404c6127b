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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLabTestExists      = errors.New("lab test name or code already exists")
	ErrLabTestNotFound    = errors.New("lab test not found")
	ErrTestOrderNotFound  = errors.New("test order not found")
	ErrInvalidLabTestCost = errors.New("price must not be negative")
)

type LabUsecase interface {
	ListTests(ctx context.Context) ([]dto.LabTestResponse, error)
	CreateTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error)

	ListOrders(ctx context.Context) ([]dto.TestOrderResponse, error)
	CreateOrder(ctx context.Context, actorUserID uuid.UUID, req *dto.CreateTestOrderRequest) (*dto.TestOrderResponse, error)
	UpdateOrder(ctx context.Context, actorUserID, id uuid.UUID, req *dto.UpdateTestOrderRequest) (*dto.TestOrderResponse, error)
}

type labUsecase struct {
	tx            database.Transactor
	log           *logrus.Logger
	labTestRepo   repository.LabTestRepository
	testOrderRepo repository.TestOrderRepository
	patientRepo   repository.PatientRepository
	doctorRepo    repository.DoctorRepository
	events        service.EventRecorder
	now           func() time.Time
}

func NewLabUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	labTestRepo repository.LabTestRepository,
	testOrderRepo repository.TestOrderRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	events service.EventRecorder,
) LabUsecase {
	return &labUsecase{
		tx:            tx,
		log:           log,
		labTestRepo:   labTestRepo,
		testOrderRepo: testOrderRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		events:        events,
		now:           time.Now,
	}
}

func (u *labUsecase) ListTests(ctx context.Context) ([]dto.LabTestResponse, error) {
	tests, err := u.labTestRepo.FindAll(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list lab tests: %+v", err)
		return nil, err
	}
	return converter.LabTestsToResponses(tests), nil
}

func (u *labUsecase) CreateTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error) {
	if req.Price.IsNegative() {
		return nil, ErrInvalidLabTestCost
	}

	test := &entity.LabTest{
		TestName:                req.TestName,
		TestCode:                req.TestCode,
		Category:                req.Category,
		Description:             req.Description,
		Price:                   req.Price,
		NormalRange:             req.NormalRange,
		PreparationInstructions: req.PreparationInstructions,
	}

	if err := u.labTestRepo.Create(u.tx.Conn(ctx), test); err != nil {
		if isDuplicateKeyError(err, "test_") {
			return nil, ErrLabTestExists
		}
		u.log.Warnf("Failed to create lab test: %+v", err)
		return nil, err
	}

	u.log.Infof("Lab test created: %s (%s)", test.TestName, test.TestCode)
	return converter.LabTestToResponse(test), nil
}

func (u *labUsecase) ListOrders(ctx context.Context) ([]dto.TestOrderResponse, error) {
	orders, err := u.testOrderRepo.FindAll(u.tx.Conn(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to list test orders: %+v", err)
		return nil, err
	}
	return converter.TestOrderDetailsToResponses(orders), nil
}

func (u *labUsecase) CreateOrder(ctx context.Context, actorUserID uuid.UUID, req *dto.CreateTestOrderRequest) (*dto.TestOrderResponse, error) {
	order := &entity.TestOrder{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		LabTestID: req.LabTestID,
		OrderDate: u.now(),
		Status:    entity.TestOrderStatusOrdered,
		Notes:     req.Notes,
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		test, err := u.labTestRepo.FindByID(tx, req.LabTestID)
		if err != nil {
			u.log.Warnf("Failed to find lab test: %+v", err)
			return err
		}
		if test == nil {
			return ErrLabTestNotFound
		}

		if err := u.testOrderRepo.Create(tx, order); err != nil {
			u.log.Warnf("Failed to create test order: %+v", err)
			return err
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventLabTestOrdered,
			PatientID:   patient.ID,
			RelatedID:   &order.ID,
			ActorUserID: &actorUserID,
			Title:       "Lab test ordered",
			Description: test.TestName,
			Metadata: entity.JSON{
				"test_code": test.TestCode,
				"doctor_id": doctor.ID.String(),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Test order created: %s", order.ID)
	return converter.TestOrderToResponse(order), nil
}

// UpdateOrder advances a test order. Collection and reporting stamp their
// dates; reporting also appends lab_results_reported to the timeline.
func (u *labUsecase) UpdateOrder(ctx context.Context, actorUserID, id uuid.UUID, req *dto.UpdateTestOrderRequest) (*dto.TestOrderResponse, error) {
	var order *entity.TestOrder

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = u.testOrderRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find test order: %+v", err)
			return err
		}
		if order == nil {
			return ErrTestOrderNotFound
		}

		if req.Results != nil {
			order.Results = *req.Results
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}

		reported := false
		if req.Status != nil {
			status, ok := entity.ParseTestOrderStatus(*req.Status)
			if !ok {
				return ErrInvalidStatus
			}

			now := u.now()
			switch {
			case status == entity.TestOrderStatusCollected && order.CollectedDate == nil:
				order.CollectedDate = &now
			case status == entity.TestOrderStatusReported && order.Status != entity.TestOrderStatusReported:
				order.ReportedDate = &now
				reported = true
			}
			order.Status = status
		}

		if err := u.testOrderRepo.Update(tx, order); err != nil {
			u.log.Warnf("Failed to update test order: %+v", err)
			return err
		}

		if !reported {
			return nil
		}
		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventLabResultsReported,
			PatientID:   order.PatientID,
			RelatedID:   &order.ID,
			ActorUserID: &actorUserID,
			Title:       "Lab results reported",
			Description: order.Results,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Test order updated: %s (status=%s)", order.ID, order.Status)
	return converter.TestOrderToResponse(order), nil
}
