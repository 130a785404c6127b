package usecase

import (
	"context"
	"errors"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("prescription template not found")

// PrescriptionTemplateUsecase manages a doctor's reusable prescriptions.
// Doctors see their own templates plus the public ones; only the owner
// deletes.
type PrescriptionTemplateUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.PrescriptionTemplateResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreatePrescriptionTemplateRequest) (*dto.PrescriptionTemplateResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type prescriptionTemplateUsecase struct {
	tx           database.Transactor
	log          *logrus.Logger
	templateRepo repository.PrescriptionTemplateRepository
	doctorRepo   repository.DoctorRepository
}

func NewPrescriptionTemplateUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	templateRepo repository.PrescriptionTemplateRepository,
	doctorRepo repository.DoctorRepository,
) PrescriptionTemplateUsecase {
	return &prescriptionTemplateUsecase{
		tx:           tx,
		log:          log,
		templateRepo: templateRepo,
		doctorRepo:   doctorRepo,
	}
}

func (u *prescriptionTemplateUsecase) List(ctx context.Context, userID uuid.UUID) ([]dto.PrescriptionTemplateResponse, error) {
	db := u.tx.Conn(ctx)
	doctor, err := doctorForUser(db, u.log, u.doctorRepo, userID)
	if err != nil {
		return nil, err
	}

	templates, err := u.templateRepo.FindVisibleTo(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list prescription templates: %+v", err)
		return nil, err
	}
	return converter.PrescriptionTemplatesToResponses(templates), nil
}

func (u *prescriptionTemplateUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreatePrescriptionTemplateRequest) (*dto.PrescriptionTemplateResponse, error) {
	template := &entity.PrescriptionTemplate{
		TemplateName: req.TemplateName,
		Condition:    req.Condition,
		Diagnosis:    req.Diagnosis,
		Notes:        req.Notes,
		IsPublic:     req.IsPublic,
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := doctorForUser(tx, u.log, u.doctorRepo, userID)
		if err != nil {
			return err
		}
		template.DoctorID = doctor.ID

		if err := u.templateRepo.Create(tx, template); err != nil {
			u.log.Warnf("Failed to create prescription template: %+v", err)
			return err
		}

		for _, item := range req.Medications {
			line := entity.PrescriptionTemplateMedication{
				TemplateID:   template.ID,
				MedicationID: item.MedicationID,
				Dosage:       item.Dosage,
				Frequency:    item.Frequency,
				Duration:     item.Duration,
				Instructions: item.Instructions,
			}
			if err := u.templateRepo.CreateMedication(tx, &line); err != nil {
				if isForeignKeyError(err, "medication") {
					return ErrMedicationNotFound
				}
				u.log.Warnf("Failed to create template line: %+v", err)
				return err
			}
			template.Medications = append(template.Medications, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Prescription template created: %s (%s)", template.ID, template.TemplateName)
	return converter.PrescriptionTemplateToResponse(template), nil
}

// Delete removes one of the caller's templates. Another doctor's template
// is reported as missing, public or not.
func (u *prescriptionTemplateUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := doctorForUser(tx, u.log, u.doctorRepo, userID)
		if err != nil {
			return err
		}

		template, err := u.templateRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find prescription template: %+v", err)
			return err
		}
		if template == nil || template.DoctorID != doctor.ID {
			return ErrTemplateNotFound
		}

		affected, err := u.templateRepo.Delete(tx, id)
		if err != nil {
			u.log.Warnf("Failed to delete prescription template: %+v", err)
			return err
		}
		if affected == 0 {
			return ErrTemplateNotFound
		}

		u.log.Infof("Prescription template deleted: %s", id)
		return nil
	})
}
