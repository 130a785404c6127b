package repository

import (
	"errors"
	"fmt"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labTestRepository struct{}

func NewLabTestRepository() domainRepo.LabTestRepository {
	return &labTestRepository{}
}

func (r *labTestRepository) Create(db *gorm.DB, test *entity.LabTest) error {
	return db.Create(test).Error
}

func (r *labTestRepository) FindAll(db *gorm.DB) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	if err := db.Order("category ASC, test_name ASC").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *labTestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabTest, error) {
	var test entity.LabTest
	err := db.Where("id = ?", id).First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

type testOrderRepository struct{}

func NewTestOrderRepository() domainRepo.TestOrderRepository {
	return &testOrderRepository{}
}

func (r *testOrderRepository) Create(db *gorm.DB, order *entity.TestOrder) error {
	return db.Create(order).Error
}

func (r *testOrderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TestOrder, error) {
	var order entity.TestOrder
	err := db.Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *testOrderRepository) FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.TestOrderDetail, error) {
	var orders []entity.TestOrderDetail
	query := db.Table("test_orders").
		Select(fmt.Sprintf("test_orders.*, %s AS patient_name, %s AS doctor_name, lab_tests.test_name, COALESCE(lab_tests.normal_range, '') AS normal_range", patientNameSQL, doctorNameSQL)).
		Joins("JOIN patients ON patients.id = test_orders.patient_id").
		Joins(fmt.Sprintf(joinDoctorUser, "test_orders")).
		Joins("JOIN lab_tests ON lab_tests.id = test_orders.lab_test_id")
	if patientID != nil {
		query = query.Where("test_orders.patient_id = ?", *patientID)
	}
	err := query.Order("test_orders.order_date DESC").Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *testOrderRepository) Update(db *gorm.DB, order *entity.TestOrder) error {
	return db.Save(order).Error
}
