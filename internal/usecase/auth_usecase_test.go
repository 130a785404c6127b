package usecase

import (
	"context"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/pkg/password"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	r := &stubUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) Create(db *gorm.DB, user *entity.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.users[user.Username] = user
	return nil
}

func (r *stubUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	return r.users[username], nil
}

func (r *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type stubTokens struct {
	issued []string
}

func (s *stubTokens) GenerateToken(userID uuid.UUID, username, role string) (string, error) {
	token := role + ":" + username
	s.issued = append(s.issued, token)
	return token, nil
}

func (s *stubTokens) GetExpiry() time.Duration {
	return time.Hour
}

func newAuthFixture(users ...*entity.User) (*authUsecase, *stubUserRepo, *stubPatientRepo) {
	userRepo := newStubUserRepo(users...)
	patientRepo := newStubPatientRepo()
	uc := NewAuthUsecase(&stubTransactor{}, testLogger(), userRepo, patientRepo, &stubTokens{}).(*authUsecase)
	uc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }
	return uc, userRepo, patientRepo
}

func TestRegister_CreatesPatientAccount(t *testing.T) {
	uc, userRepo, patientRepo := newAuthFixture()

	resp, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Username: "ada",
		Password: "secret123",
		Name:     "Ada King Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, "patient:ada", resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "patient", resp.User.Role)

	stored := userRepo.users["ada"]
	require.NotNil(t, stored)
	assert.Equal(t, entity.RolePatient, stored.Role)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, password.Verify("secret123", stored.Password))

	patient, err := patientRepo.FindByUserID(nil, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, "Ada", patient.FirstName)
	assert.Equal(t, "King Lovelace", patient.LastName)
	assert.Equal(t, entity.GenderOther, patient.Gender)
	assert.Equal(t, "555-0100", patient.Phone)
	assert.Equal(t, 1996, patient.DateOfBirth.Year())
}

func TestRegister_SingleWordName(t *testing.T) {
	uc, userRepo, patientRepo := newAuthFixture()

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Username:    "cher",
		Password:    "secret123",
		Name:        "Cher",
		Email:       "cher@example.com",
		DateOfBirth: "1946-05-20",
		Gender:      entity.GenderFemale,
	})
	require.NoError(t, err)

	patient, _ := patientRepo.FindByUserID(nil, userRepo.users["cher"].ID)
	require.NotNil(t, patient)
	assert.Equal(t, "Cher", patient.FirstName)
	assert.Equal(t, "Cher", patient.LastName)
	assert.Equal(t, entity.GenderFemale, patient.Gender)
	assert.Equal(t, 1946, patient.DateOfBirth.Year())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, _, patientRepo := newAuthFixture(&entity.User{ID: uuid.New(), Username: "taken"})

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Username: "taken",
		Password: "secret123",
		Name:     "Someone Else",
		Email:    "else@example.com",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Empty(t, patientRepo.patients)
}

func TestLogin(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)
	user := &entity.User{ID: uuid.New(), Username: "admin", Password: hash, Role: entity.RoleAdmin, Name: "Admin"}
	uc, _, _ := newAuthFixture(user)
	ctx := context.Background()

	resp, err := uc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "admin:admin", resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	_, err = uc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetCurrentUser(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "doc", Role: entity.RoleDoctor, Name: "Doc"}
	uc, _, _ := newAuthFixture(user)

	resp, err := uc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "doctor", resp.Role)

	_, err = uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"  Grace   Brewster Hopper ", "Grace", "Brewster Hopper"},
		{"Plato", "Plato", "Plato"},
	}
	for _, tt := range tests {
		first, last := splitName(tt.in)
		assert.Equal(t, tt.first, first, tt.in)
		assert.Equal(t, tt.last, last, tt.in)
	}
}
