package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrAlertNotFound   = errors.New("alert not found")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrEmptyVitals     = errors.New("at least one vital reading is required")
	ErrInvalidNextDose = errors.New("next dose date must be after the administered date")
	ErrNegativeReading = errors.New("vital readings must not be negative")
)

// ClinicalUsecase keeps the bedside record of a patient: alerts, vitals,
// and vaccinations. The My* methods serve the same records on the portal.
type ClinicalUsecase interface {
	ListAlerts(ctx context.Context, patientID uuid.UUID) ([]dto.PatientAlertResponse, error)
	CreateAlert(ctx context.Context, actorUserID uuid.UUID, req *dto.CreatePatientAlertRequest) (*dto.PatientAlertResponse, error)
	UpdateAlert(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientAlertRequest) (*dto.PatientAlertResponse, error)

	ListVitals(ctx context.Context, patientID uuid.UUID) ([]dto.HealthVitalResponse, error)
	RecordVitals(ctx context.Context, actorUserID uuid.UUID, req *dto.RecordVitalsRequest) (*dto.HealthVitalResponse, error)

	ListVaccinations(ctx context.Context, patientID uuid.UUID) ([]dto.VaccinationResponse, error)
	RecordVaccination(ctx context.Context, actorUserID uuid.UUID, req *dto.RecordVaccinationRequest) (*dto.VaccinationResponse, error)

	MyAlerts(ctx context.Context, userID uuid.UUID) ([]dto.PatientAlertResponse, error)
	MyVitals(ctx context.Context, userID uuid.UUID) ([]dto.HealthVitalResponse, error)
	RecordMyVitals(ctx context.Context, userID uuid.UUID, req *dto.RecordVitalsRequest) (*dto.HealthVitalResponse, error)
	MyVaccinations(ctx context.Context, userID uuid.UUID) ([]dto.VaccinationResponse, error)
}

type clinicalUsecase struct {
	tx              database.Transactor
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	alertRepo       repository.PatientAlertRepository
	vitalRepo       repository.HealthVitalRepository
	vaccinationRepo repository.VaccinationRepository
	events          service.EventRecorder
	now             func() time.Time
}

func NewClinicalUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	alertRepo repository.PatientAlertRepository,
	vitalRepo repository.HealthVitalRepository,
	vaccinationRepo repository.VaccinationRepository,
	events service.EventRecorder,
) ClinicalUsecase {
	return &clinicalUsecase{
		tx:              tx,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		alertRepo:       alertRepo,
		vitalRepo:       vitalRepo,
		vaccinationRepo: vaccinationRepo,
		events:          events,
		now:             time.Now,
	}
}

func (u *clinicalUsecase) ListAlerts(ctx context.Context, patientID uuid.UUID) ([]dto.PatientAlertResponse, error) {
	db := u.tx.Conn(ctx)
	if _, err := requirePatient(db, u.log, u.patientRepo, patientID); err != nil {
		return nil, err
	}
	return u.alerts(db, patientID, false)
}

// CreateAlert raises an alert and puts alert_created on the timeline.
func (u *clinicalUsecase) CreateAlert(ctx context.Context, actorUserID uuid.UUID, req *dto.CreatePatientAlertRequest) (*dto.PatientAlertResponse, error) {
	severity, ok := entity.ParseAlertSeverity(req.Severity)
	if !ok {
		return nil, ErrInvalidSeverity
	}

	alert := &entity.PatientAlert{
		PatientID: req.PatientID,
		AlertType: req.AlertType,
		Severity:  severity,
		Message:   req.Message,
		IsActive:  true,
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := requirePatient(tx, u.log, u.patientRepo, req.PatientID); err != nil {
			return err
		}

		if err := u.alertRepo.Create(tx, alert); err != nil {
			u.log.Warnf("Failed to create patient alert: %+v", err)
			return err
		}

		_, err := u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventAlertCreated,
			PatientID:   alert.PatientID,
			RelatedID:   &alert.ID,
			ActorUserID: &actorUserID,
			Title:       fmt.Sprintf("%s Alert", alert.AlertType),
			Description: alert.Message,
			Metadata:    entity.JSON{"severity": string(alert.Severity)},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient alert created: %s (%s, %s)", alert.ID, alert.AlertType, alert.Severity)
	return converter.PatientAlertToResponse(alert), nil
}

func (u *clinicalUsecase) UpdateAlert(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientAlertRequest) (*dto.PatientAlertResponse, error) {
	var alert *entity.PatientAlert

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		alert, err = u.alertRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient alert: %+v", err)
			return err
		}
		if alert == nil {
			return ErrAlertNotFound
		}

		if req.Severity != nil {
			severity, ok := entity.ParseAlertSeverity(*req.Severity)
			if !ok {
				return ErrInvalidSeverity
			}
			alert.Severity = severity
		}
		if req.Message != nil {
			alert.Message = *req.Message
		}
		if req.IsActive != nil {
			alert.IsActive = *req.IsActive
		}

		if err := u.alertRepo.Update(tx, alert); err != nil {
			u.log.Warnf("Failed to update patient alert: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient alert updated: %s (active=%t)", alert.ID, alert.IsActive)
	return converter.PatientAlertToResponse(alert), nil
}

func (u *clinicalUsecase) ListVitals(ctx context.Context, patientID uuid.UUID) ([]dto.HealthVitalResponse, error) {
	db := u.tx.Conn(ctx)
	if _, err := requirePatient(db, u.log, u.patientRepo, patientID); err != nil {
		return nil, err
	}
	return u.vitals(db, patientID)
}

func (u *clinicalUsecase) RecordVitals(ctx context.Context, actorUserID uuid.UUID, req *dto.RecordVitalsRequest) (*dto.HealthVitalResponse, error) {
	db := u.tx.Conn(ctx)
	patient, err := requirePatient(db, u.log, u.patientRepo, req.PatientID)
	if err != nil {
		return nil, err
	}
	return u.recordVitals(db, patient, actorUserID, req)
}

func (u *clinicalUsecase) ListVaccinations(ctx context.Context, patientID uuid.UUID) ([]dto.VaccinationResponse, error) {
	db := u.tx.Conn(ctx)
	if _, err := requirePatient(db, u.log, u.patientRepo, patientID); err != nil {
		return nil, err
	}
	return u.vaccinations(db, patientID)
}

// RecordVaccination stores a dose, puts vaccination_administered on the
// timeline, and tells the patient when they have a portal account.
func (u *clinicalUsecase) RecordVaccination(ctx context.Context, actorUserID uuid.UUID, req *dto.RecordVaccinationRequest) (*dto.VaccinationResponse, error) {
	administered, err := parseDate(req.AdministeredDate)
	if err != nil {
		return nil, err
	}
	nextDose, err := parseOptionalDate(req.NextDoseDate)
	if err != nil {
		return nil, err
	}
	if nextDose != nil && !nextDose.After(administered) {
		return nil, ErrInvalidNextDose
	}

	vaccination := &entity.Vaccination{
		PatientID:        req.PatientID,
		VaccineName:      req.VaccineName,
		AdministeredDate: administered,
		AdministeredBy:   req.AdministeredBy,
		BatchNumber:      req.BatchNumber,
		NextDoseDate:     nextDose,
		Notes:            req.Notes,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := requirePatient(tx, u.log, u.patientRepo, req.PatientID)
		if err != nil {
			return err
		}
		if req.AdministeredBy != nil {
			if _, err := requireDoctor(tx, u.log, u.doctorRepo, *req.AdministeredBy); err != nil {
				return err
			}
		}

		if err := u.vaccinationRepo.Create(tx, vaccination); err != nil {
			u.log.Warnf("Failed to create vaccination: %+v", err)
			return err
		}

		metadata := entity.JSON{"vaccine_name": vaccination.VaccineName}
		if vaccination.BatchNumber != "" {
			metadata["batch_number"] = vaccination.BatchNumber
		}
		if nextDose != nil {
			metadata["next_dose_date"] = req.NextDoseDate
		}
		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventVaccinationGiven,
			PatientID:   patient.ID,
			RelatedID:   &vaccination.ID,
			ActorUserID: &actorUserID,
			Title:       "Vaccination administered",
			Description: fmt.Sprintf("Administered %s vaccine", vaccination.VaccineName),
			Metadata:    metadata,
		})
		if err != nil {
			return err
		}

		if patient.UserID == nil {
			return nil
		}
		message := fmt.Sprintf("Your %s vaccination on %s has been recorded", vaccination.VaccineName, req.AdministeredDate)
		if nextDose != nil {
			message += fmt.Sprintf(". Next dose due on %s", req.NextDoseDate)
		}
		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    *patient.UserID,
			Type:      "vaccination",
			Title:     "Vaccination recorded",
			Message:   message,
			RelatedID: &vaccination.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Vaccination recorded: %s (%s)", vaccination.ID, vaccination.VaccineName)
	return converter.VaccinationToResponse(vaccination), nil
}

// MyAlerts shows a patient only the alerts still in force.
func (u *clinicalUsecase) MyAlerts(ctx context.Context, userID uuid.UUID) ([]dto.PatientAlertResponse, error) {
	db := u.tx.Conn(ctx)
	patient, err := patientForUser(db, u.log, u.patientRepo, userID)
	if err != nil {
		return nil, err
	}
	return u.alerts(db, patient.ID, true)
}

func (u *clinicalUsecase) MyVitals(ctx context.Context, userID uuid.UUID) ([]dto.HealthVitalResponse, error) {
	db := u.tx.Conn(ctx)
	patient, err := patientForUser(db, u.log, u.patientRepo, userID)
	if err != nil {
		return nil, err
	}
	return u.vitals(db, patient.ID)
}

// RecordMyVitals logs a self-measured reading. The patient comes from the
// session; any patient_id in the body is ignored.
func (u *clinicalUsecase) RecordMyVitals(ctx context.Context, userID uuid.UUID, req *dto.RecordVitalsRequest) (*dto.HealthVitalResponse, error) {
	db := u.tx.Conn(ctx)
	patient, err := patientForUser(db, u.log, u.patientRepo, userID)
	if err != nil {
		return nil, err
	}
	return u.recordVitals(db, patient, userID, req)
}

func (u *clinicalUsecase) MyVaccinations(ctx context.Context, userID uuid.UUID) ([]dto.VaccinationResponse, error) {
	db := u.tx.Conn(ctx)
	patient, err := patientForUser(db, u.log, u.patientRepo, userID)
	if err != nil {
		return nil, err
	}
	return u.vaccinations(db, patient.ID)
}

func (u *clinicalUsecase) alerts(db *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]dto.PatientAlertResponse, error) {
	alerts, err := u.alertRepo.FindByPatientID(db, patientID, activeOnly)
	if err != nil {
		u.log.Warnf("Failed to list patient alerts: %+v", err)
		return nil, err
	}
	return converter.PatientAlertsToResponses(alerts), nil
}

func (u *clinicalUsecase) vitals(db *gorm.DB, patientID uuid.UUID) ([]dto.HealthVitalResponse, error) {
	vitals, err := u.vitalRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list health vitals: %+v", err)
		return nil, err
	}
	return converter.HealthVitalsToResponses(vitals), nil
}

func (u *clinicalUsecase) vaccinations(db *gorm.DB, patientID uuid.UUID) ([]dto.VaccinationResponse, error) {
	vaccinations, err := u.vaccinationRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list vaccinations: %+v", err)
		return nil, err
	}
	return converter.VaccinationDetailsToResponses(vaccinations), nil
}

func (u *clinicalUsecase) recordVitals(db *gorm.DB, patient *entity.Patient, actorUserID uuid.UUID, req *dto.RecordVitalsRequest) (*dto.HealthVitalResponse, error) {
	vital := &entity.HealthVital{
		PatientID:              patient.ID,
		RecordedDate:           u.now(),
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		HeartRate:              req.HeartRate,
		Temperature:            req.Temperature,
		BloodSugar:             req.BloodSugar,
		Weight:                 req.Weight,
		Height:                 req.Height,
		OxygenSaturation:       req.OxygenSaturation,
		Notes:                  req.Notes,
		RecordedBy:             &actorUserID,
	}
	if !vital.HasReading() {
		return nil, ErrEmptyVitals
	}
	if anyNegative(vital.Temperature, vital.BloodSugar, vital.Weight, vital.Height) {
		return nil, ErrNegativeReading
	}

	if err := u.vitalRepo.Create(db, vital); err != nil {
		u.log.Warnf("Failed to record health vitals: %+v", err)
		return nil, err
	}

	u.log.Infof("Health vitals recorded: %s (patient=%s)", vital.ID, patient.ID)
	return converter.HealthVitalToResponse(vital), nil
}

func anyNegative(values ...decimal.NullDecimal) bool {
	for _, v := range values {
		if v.Valid && v.Decimal.IsNegative() {
			return true
		}
	}
	return false
}
