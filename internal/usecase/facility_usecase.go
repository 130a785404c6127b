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
	ErrDepartmentExists = errors.New("department already exists")
	ErrRoomExists       = errors.New("room number already exists")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBedExists        = errors.New("bed number already exists in this room")
	ErrBedNotFound      = errors.New("bed not found")
)

// FacilityUsecase manages departments, rooms, and beds.
type FacilityUsecase interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)

	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)

	ListBeds(ctx context.Context) ([]dto.BedResponse, error)
	CreateBed(ctx context.Context, req *dto.CreateBedRequest) (*dto.BedResponse, error)
	UpdateBed(ctx context.Context, actorUserID, id uuid.UUID, req *dto.UpdateBedRequest) (*dto.BedResponse, error)
}

type facilityUsecase struct {
	tx             database.Transactor
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
	roomRepo       repository.RoomRepository
	bedRepo        repository.BedRepository
	patientRepo    repository.PatientRepository
	events         service.EventRecorder
	metricsCache   MetricsCache
	now            func() time.Time
}

func NewFacilityUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	departmentRepo repository.DepartmentRepository,
	roomRepo repository.RoomRepository,
	bedRepo repository.BedRepository,
	patientRepo repository.PatientRepository,
	events service.EventRecorder,
	metricsCache MetricsCache,
) FacilityUsecase {
	return &facilityUsecase{
		tx:             tx,
		log:            log,
		departmentRepo: departmentRepo,
		roomRepo:       roomRepo,
		bedRepo:        bedRepo,
		patientRepo:    patientRepo,
		events:         events,
		metricsCache:   metricsCache,
		now:            time.Now,
	}
}

func (u *facilityUsecase) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}
	return converter.DepartmentsToResponses(departments), nil
}

func (u *facilityUsecase) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{
		Name:        req.Name,
		Description: req.Description,
		Floor:       req.Floor,
	}

	if err := u.departmentRepo.Create(u.tx.Conn(ctx), department); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDepartmentExists
		}
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	u.log.Infof("Department created: %s", department.Name)
	return converter.DepartmentToResponse(department), nil
}

func (u *facilityUsecase) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := u.roomRepo.FindAll(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list rooms: %+v", err)
		return nil, err
	}
	return converter.RoomsToResponses(rooms), nil
}

func (u *facilityUsecase) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	room := &entity.Room{
		RoomNumber:   req.RoomNumber,
		DepartmentID: req.DepartmentID,
		RoomType:     req.RoomType,
		Floor:        req.Floor,
		Capacity:     capacity,
	}

	if err := u.roomRepo.Create(u.tx.Conn(ctx), room); err != nil {
		if isDuplicateKeyError(err, "room_number") {
			return nil, ErrRoomExists
		}
		if isForeignKeyError(err, "department") {
			return nil, ErrDepartmentNotFound
		}
		u.log.Warnf("Failed to create room: %+v", err)
		return nil, err
	}

	u.log.Infof("Room created: %s", room.RoomNumber)
	return converter.RoomToResponse(room), nil
}

func (u *facilityUsecase) ListBeds(ctx context.Context) ([]dto.BedResponse, error) {
	beds, err := u.bedRepo.FindAll(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list beds: %+v", err)
		return nil, err
	}
	return converter.BedsToResponses(beds), nil
}

func (u *facilityUsecase) CreateBed(ctx context.Context, req *dto.CreateBedRequest) (*dto.BedResponse, error) {
	status := entity.BedStatusAvailable
	if req.Status != "" {
		status = entity.BedStatus(req.Status)
	}

	bed := &entity.Bed{
		RoomID:    req.RoomID,
		BedNumber: req.BedNumber,
		Status:    status,
	}

	if err := u.bedRepo.Create(u.tx.Conn(ctx), bed); err != nil {
		if isDuplicateKeyError(err, "bed") {
			return nil, ErrBedExists
		}
		if isForeignKeyError(err, "room") {
			return nil, ErrRoomNotFound
		}
		u.log.Warnf("Failed to create bed: %+v", err)
		return nil, err
	}

	u.metricsCache.Invalidate(ctx)

	u.log.Infof("Bed created: %s", bed.ID)
	return converter.BedToResponse(bed), nil
}

// UpdateBed changes a bed's status or occupant. Assigning a patient marks
// the bed occupied and appends a bed_assigned event in the same transaction.
func (u *facilityUsecase) UpdateBed(ctx context.Context, actorUserID, id uuid.UUID, req *dto.UpdateBedRequest) (*dto.BedResponse, error) {
	var bed *entity.Bed

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		bed, err = u.bedRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find bed: %+v", err)
			return err
		}
		if bed == nil {
			return ErrBedNotFound
		}

		if req.Status != nil {
			bed.Status = entity.BedStatus(*req.Status)
		}

		if req.ClearPatient {
			bed.PatientID = nil
			bed.AssignedDate = nil
			if req.Status == nil {
				bed.Status = entity.BedStatusAvailable
			}
		}

		var assigned *entity.Patient
		if req.PatientID != nil {
			assigned, err = u.patientRepo.FindByID(tx, *req.PatientID)
			if err != nil {
				u.log.Warnf("Failed to find patient: %+v", err)
				return err
			}
			if assigned == nil {
				return ErrPatientNotFound
			}

			now := u.now()
			bed.PatientID = &assigned.ID
			bed.AssignedDate = &now
			bed.Status = entity.BedStatusOccupied
		}

		if err := u.bedRepo.Update(tx, bed); err != nil {
			u.log.Warnf("Failed to update bed: %+v", err)
			return err
		}

		if assigned == nil {
			return nil
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventBedAssigned,
			PatientID:   assigned.ID,
			RelatedID:   &bed.ID,
			ActorUserID: &actorUserID,
			Title:       "Bed assigned",
			Description: "Assigned to room " + bed.Room.RoomNumber + " bed " + bed.BedNumber,
			Metadata: entity.JSON{
				"room_number": bed.Room.RoomNumber,
				"bed_number":  bed.BedNumber,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metricsCache.Invalidate(ctx)

	u.log.Infof("Bed updated: %s (status=%s)", bed.ID, bed.Status)
	return converter.BedToResponse(bed), nil
}
