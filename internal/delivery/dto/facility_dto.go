package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
	Floor       *int   `json:"floor"`
}

type CreateRoomRequest struct {
	RoomNumber   string     `json:"room_number" validate:"required,max=20"`
	DepartmentID *uuid.UUID `json:"department_id"`
	RoomType     string     `json:"room_type" validate:"required,max=50"`
	Floor        int        `json:"floor"`
	Capacity     int        `json:"capacity" validate:"omitempty,gte=1"`
}

type CreateBedRequest struct {
	RoomID    uuid.UUID `json:"room_id" validate:"required"`
	BedNumber string    `json:"bed_number" validate:"required,max=20"`
	Status    string    `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

// UpdateBedRequest is a partial update. Assigning a patient marks the bed
// occupied; ClearPatient releases it.
type UpdateBedRequest struct {
	Status       *string    `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	PatientID    *uuid.UUID `json:"patient_id"`
	ClearPatient bool       `json:"clear_patient"`
}

// Response DTOs

type DepartmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Floor       *int      `json:"floor,omitempty"`
}

type RoomResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomNumber   string     `json:"room_number"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	RoomType     string     `json:"room_type"`
	Floor        int        `json:"floor"`
	Capacity     int        `json:"capacity"`
}

type BedResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"room_id"`
	RoomNumber   string     `json:"room_number,omitempty"`
	BedNumber    string     `json:"bed_number"`
	Status       string     `json:"status"`
	PatientID    *uuid.UUID `json:"patient_id,omitempty"`
	AssignedDate *time.Time `json:"assigned_date,omitempty"`
}
