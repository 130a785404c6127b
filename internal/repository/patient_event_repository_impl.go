package repository

import (
	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientEventRepository struct{}

func NewPatientEventRepository() domainRepo.PatientEventRepository {
	return &patientEventRepository{}
}

func (r *patientEventRepository) Create(db *gorm.DB, event *entity.PatientEvent) error {
	return db.Create(event).Error
}

// FindByPatientID returns the timeline newest first, resolving the patient
// and actor names at read time.
func (r *patientEventRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PatientEventDetail, error) {
	var events []entity.PatientEventDetail
	err := db.Table("patient_events").
		Select("patient_events.*, " + patientNameSQL + " AS patient_name, COALESCE(users.name, '') AS actor_name").
		Joins("JOIN patients ON patients.id = patient_events.patient_id").
		Joins("LEFT JOIN users ON users.id = patient_events.actor_user_id").
		Where("patient_events.patient_id = ?", patientID).
		Order("patient_events.event_date DESC, patient_events.created_at DESC").
		Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
