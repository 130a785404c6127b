package usecase

import (
	"context"
	"errors"
	"strings"
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
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// defaultPatientAge is used when a self-registering patient omits a birth date.
const defaultPatientAge = 30

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, username, role string) (string, error)
	GetExpiry() time.Duration
}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	tx          database.Transactor
	log         *logrus.Logger
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	tokens      TokenIssuer
	now         func() time.Time
}

func NewAuthUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	tokens TokenIssuer,
) AuthUsecase {
	return &authUsecase{
		tx:          tx,
		log:         log,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		tokens:      tokens,
		now:         time.Now,
	}
}

// Register creates a patient account and its patient record in one
// transaction. The role is always patient.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	dob := u.now().AddDate(-defaultPatientAge, 0, 0)
	if req.DateOfBirth != "" {
		parsed, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		dob = parsed
	}

	gender := req.Gender
	if gender == "" {
		gender = entity.GenderOther
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Password: hashedPassword,
		Role:     entity.RolePatient,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
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

		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "username") {
				return ErrUsernameExists
			}
			if isDuplicateKeyError(err, "email") {
				return ErrEmailExists
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		firstName, lastName := splitName(req.Name)
		patient := &entity.Patient{
			UserID:                &user.ID,
			FirstName:             firstName,
			LastName:              lastName,
			DateOfBirth:           dob,
			Gender:                gender,
			Phone:                 req.Phone,
			Email:                 req.Email,
			Address:               req.Address,
			BloodGroup:            req.BloodGroup,
			EmergencyContactName:  req.EmergencyContactName,
			EmergencyContactPhone: req.EmergencyContactPhone,
		}
		if err := u.patientRepo.Create(tx, patient); err != nil {
			u.log.Warnf("Failed to create patient record: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient registered: user=%s", user.ID)
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByUsername(u.tx.Conn(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return u.issue(user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.tx.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := u.tokens.GenerateToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(u.tokens.GetExpiry().Seconds()),
		User:      *converter.UserToResponse(user),
	}, nil
}

// splitName turns "Ada King Lovelace" into ("Ada", "King Lovelace"). A single
// word is used for both parts.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name, name
	}
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], strings.Join(parts[1:], " ")
}
