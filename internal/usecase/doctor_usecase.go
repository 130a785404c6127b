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
	"hms-backend/pkg/password"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorProfileNotFound = errors.New("doctor profile not found")
	ErrLicenseNumberExists   = errors.New("license number already exists")
	ErrDepartmentNotFound    = errors.New("department not found")
)

type DoctorUsecase interface {
	List(ctx context.Context) ([]dto.DoctorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)

	// Self views for the calling doctor
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
	MyAppointments(ctx context.Context, userID uuid.UUID, date string) ([]dto.AppointmentResponse, error)
	MyPatients(ctx context.Context, userID uuid.UUID) ([]dto.PatientResponse, error)
}

type doctorUsecase struct {
	tx              database.Transactor
	log             *logrus.Logger
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		tx:              tx,
		log:             log,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *doctorUsecase) List(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.tx.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// Create registers the doctor's login account and clinical profile in one
// transaction.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		DepartmentID:      req.DepartmentID,
		Specialization:    req.Specialization,
		LicenseNumber:     req.LicenseNumber,
		YearsOfExperience: req.YearsOfExperience,
		User: entity.User{
			Username: req.Username,
			Password: hashedPassword,
			Role:     entity.RoleDoctor,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
		},
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		existing, err := u.userRepo.FindByUsername(tx, req.Username)
		if err != nil {
			u.log.Warnf("Failed to look up username: %+v", err)
			return err
		}
		if existing != nil {
			return ErrUsernameExists
		}

		if err := u.userRepo.Create(tx, &doctor.User); err != nil {
			if isDuplicateKeyError(err, "username") {
				return ErrUsernameExists
			}
			if isDuplicateKeyError(err, "email") {
				return ErrEmailExists
			}
			u.log.Warnf("Failed to create doctor user: %+v", err)
			return err
		}

		doctor.UserID = doctor.User.ID
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			if isDuplicateKeyError(err, "license") {
				return ErrLicenseNumberExists
			}
			if isForeignKeyError(err, "department") {
				return ErrDepartmentNotFound
			}
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Doctor created: %s (user=%s)", doctor.ID, doctor.UserID)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// MyAppointments lists the caller's appointments, optionally for one day.
func (u *doctorUsecase) MyAppointments(ctx context.Context, userID uuid.UUID, date string) ([]dto.AppointmentResponse, error) {
	doctor, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := &entity.AppointmentFilter{DoctorID: &doctor.ID}
	if date != "" {
		var day time.Time
		day, err = parseDate(date)
		if err != nil {
			return nil, err
		}
		filter.Date = &day
	}

	appointments, err := u.appointmentRepo.FindAll(u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentDetailsToResponses(appointments), nil
}

// MyPatients lists the distinct patients the caller has appointments with.
func (u *doctorUsecase) MyPatients(ctx context.Context, userID uuid.UUID) ([]dto.PatientResponse, error) {
	doctor, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindByDoctorID(u.tx.Conn(ctx), doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list doctor patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *doctorUsecase) findByUser(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.tx.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileNotFound
	}
	return doctor, nil
}
