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

	"github.com/sirupsen/logrus"
)

// DefaultExpiryWindowDays is the look-ahead used when no window is given.
const DefaultExpiryWindowDays = 30

var (
	ErrMedicationExists  = errors.New("medication already exists")
	ErrInvalidUnitPrice  = errors.New("unit price must not be negative")
	ErrInvalidExpiryDays = errors.New("days must be a positive number")
)

type MedicationUsecase interface {
	List(ctx context.Context) ([]dto.MedicationResponse, error)
	Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	Expiring(ctx context.Context, days int) ([]dto.MedicationResponse, error)
	LowStock(ctx context.Context) ([]dto.MedicationResponse, error)
}

type medicationUsecase struct {
	tx             database.Transactor
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	now            func() time.Time
}

func NewMedicationUsecase(tx database.Transactor, log *logrus.Logger, medicationRepo repository.MedicationRepository) MedicationUsecase {
	return &medicationUsecase{
		tx:             tx,
		log:            log,
		medicationRepo: medicationRepo,
		now:            time.Now,
	}
}

func (u *medicationUsecase) List(ctx context.Context) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.FindAll(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list medications: %+v", err)
		return nil, err
	}
	return converter.MedicationsToResponses(medications), nil
}

func (u *medicationUsecase) Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	if req.UnitPrice.IsNegative() {
		return nil, ErrInvalidUnitPrice
	}

	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	reorderLevel := req.ReorderLevel
	if reorderLevel == nil {
		level := entity.DefaultReorderLevel
		reorderLevel = &level
	}

	medication := &entity.Medication{
		Name:          req.Name,
		GenericName:   req.GenericName,
		DosageForm:    req.DosageForm,
		Strength:      req.Strength,
		Description:   req.Description,
		Manufacturer:  req.Manufacturer,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  reorderLevel,
		ExpiryDate:    expiry,
	}

	if err := u.medicationRepo.Create(u.tx.Conn(ctx), medication); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrMedicationExists
		}
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	u.log.Infof("Medication created: %s", medication.Name)
	return converter.MedicationToResponse(medication), nil
}

// Expiring lists medications whose expiry date falls between today and
// today plus days. Zero days uses the default window.
func (u *medicationUsecase) Expiring(ctx context.Context, days int) ([]dto.MedicationResponse, error) {
	if days < 0 {
		return nil, ErrInvalidExpiryDays
	}
	if days == 0 {
		days = DefaultExpiryWindowDays
	}

	y, m, d := u.now().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, days)

	medications, err := u.medicationRepo.FindExpiringBetween(u.tx.Conn(ctx), from, to)
	if err != nil {
		u.log.Warnf("Failed to list expiring medications: %+v", err)
		return nil, err
	}
	return converter.MedicationsToResponses(medications), nil
}

func (u *medicationUsecase) LowStock(ctx context.Context) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.FindLowStock(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list low stock medications: %+v", err)
		return nil, err
	}
	return converter.MedicationsToResponses(medications), nil
}
