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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPatientProfileNotFound = errors.New("patient profile not found")

// PortalUsecase serves a patient's own records. Every view is scoped to the
// patient record linked to the caller's user.
type PortalUsecase interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	Appointments(ctx context.Context, userID uuid.UUID) ([]dto.AppointmentResponse, error)
	Prescriptions(ctx context.Context, userID uuid.UUID) ([]dto.PrescriptionResponse, error)
	LabResults(ctx context.Context, userID uuid.UUID) ([]dto.TestOrderResponse, error)
	Bills(ctx context.Context, userID uuid.UUID) ([]dto.BillResponse, error)
	Timeline(ctx context.Context, userID uuid.UUID) ([]dto.PatientEventResponse, error)
}

type portalUsecase struct {
	tx               database.Transactor
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	testOrderRepo    repository.TestOrderRepository
	billRepo         repository.BillRepository
	eventRepo        repository.PatientEventRepository
	now              func() time.Time
}

func NewPortalUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	testOrderRepo repository.TestOrderRepository,
	billRepo repository.BillRepository,
	eventRepo repository.PatientEventRepository,
) PortalUsecase {
	return &portalUsecase{
		tx:               tx,
		log:              log,
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		testOrderRepo:    testOrderRepo,
		billRepo:         billRepo,
		eventRepo:        eventRepo,
		now:              time.Now,
	}
}

func (u *portalUsecase) Profile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *portalUsecase) Appointments(ctx context.Context, userID uuid.UUID) ([]dto.AppointmentResponse, error) {
	patient, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.tx.Conn(ctx), &entity.AppointmentFilter{PatientID: &patient.ID})
	if err != nil {
		u.log.Warnf("Failed to list portal appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentDetailsToResponses(appointments), nil
}

func (u *portalUsecase) Prescriptions(ctx context.Context, userID uuid.UUID) ([]dto.PrescriptionResponse, error) {
	patient, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindAll(u.tx.Conn(ctx), &patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list portal prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionDetailsToResponses(prescriptions), nil
}

func (u *portalUsecase) LabResults(ctx context.Context, userID uuid.UUID) ([]dto.TestOrderResponse, error) {
	patient, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := u.testOrderRepo.FindAll(u.tx.Conn(ctx), &patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list portal lab results: %+v", err)
		return nil, err
	}
	return converter.TestOrderDetailsToResponses(orders), nil
}

func (u *portalUsecase) Bills(ctx context.Context, userID uuid.UUID) ([]dto.BillResponse, error) {
	patient, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	bills, err := u.billRepo.FindAll(u.tx.Conn(ctx), &patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list portal bills: %+v", err)
		return nil, err
	}
	return converter.BillSummariesToResponses(bills, u.now()), nil
}

func (u *portalUsecase) Timeline(ctx context.Context, userID uuid.UUID) ([]dto.PatientEventResponse, error) {
	patient, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := u.eventRepo.FindByPatientID(u.tx.Conn(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list portal timeline: %+v", err)
		return nil, err
	}
	return converter.PatientEventsToResponses(events), nil
}

func (u *portalUsecase) resolve(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByUserID(u.tx.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}
	return patient, nil
}
