package repository

import (
	"errors"
	"fmt"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll returns appointments enriched with patient, doctor and department
// names. Supports optional filters: patient, doctor, date and status.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.AppointmentDetail, error) {
	var appointments []entity.AppointmentDetail
	query := db.Table("appointments").
		Select(fmt.Sprintf("appointments.*, %s AS patient_name, %s AS doctor_name, COALESCE(departments.name, '') AS department_name", patientNameSQL, doctorNameSQL)).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins(fmt.Sprintf(joinDoctorUser, "appointments")).
		Joins("LEFT JOIN departments ON departments.id = doctors.department_id")

	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("appointments.patient_id = ?", *filter.PatientID)
		}
		if filter.DoctorID != nil {
			query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
		}
		if filter.Date != nil {
			query = query.Where("appointments.appointment_date = ?", filter.Date.Format("2006-01-02"))
		}
		if filter.Status != "" {
			query = query.Where("appointments.status = ?", filter.Status)
		}
	}

	err := query.
		Order("appointments.appointment_date DESC, appointments.start_time ASC").
		Scan(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus moves a scheduled appointment to a new status. Returns
// affected rows: 0 means the appointment is missing or already final.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) PatientsByDepartment(db *gorm.DB) ([]entity.DepartmentLoad, error) {
	var loads []entity.DepartmentLoad
	err := db.Table("appointments").
		Select("departments.name AS department, COUNT(DISTINCT appointments.patient_id) AS patients").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Joins("JOIN departments ON departments.id = doctors.department_id").
		Group("departments.name").
		Order("patients DESC, departments.name ASC").
		Scan(&loads).Error
	if err != nil {
		return nil, err
	}
	return loads, nil
}
