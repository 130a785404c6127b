package usecase

import (
	"context"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TimelineUsecase reads a patient's event history, newest first.
type TimelineUsecase interface {
	GetTimeline(ctx context.Context, patientID uuid.UUID) ([]dto.PatientEventResponse, error)
}

type timelineUsecase struct {
	tx          database.Transactor
	log         *logrus.Logger
	eventRepo   repository.PatientEventRepository
	patientRepo repository.PatientRepository
}

func NewTimelineUsecase(tx database.Transactor, log *logrus.Logger, eventRepo repository.PatientEventRepository, patientRepo repository.PatientRepository) TimelineUsecase {
	return &timelineUsecase{
		tx:          tx,
		log:         log,
		eventRepo:   eventRepo,
		patientRepo: patientRepo,
	}
}

func (u *timelineUsecase) GetTimeline(ctx context.Context, patientID uuid.UUID) ([]dto.PatientEventResponse, error) {
	db := u.tx.Conn(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	events, err := u.eventRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient events: %+v", err)
		return nil, err
	}

	return converter.PatientEventsToResponses(events), nil
}
