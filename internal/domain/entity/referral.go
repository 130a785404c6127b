package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReferralStatus tracks a referral from one doctor to another
type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusAccepted  ReferralStatus = "accepted"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusCancelled ReferralStatus = "cancelled"
)

func ParseReferralStatus(s string) (ReferralStatus, bool) {
	switch st := ReferralStatus(s); st {
	case ReferralStatusPending, ReferralStatusAccepted, ReferralStatusCompleted, ReferralStatusCancelled:
		return st, true
	}
	return "", false
}

var referralTransitions = map[ReferralStatus][]ReferralStatus{
	ReferralStatusPending:  {ReferralStatusAccepted, ReferralStatusCancelled},
	ReferralStatusAccepted: {ReferralStatusCompleted, ReferralStatusCancelled},
}

type Referral struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromDoctorID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	ToDoctorID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Reason        string         `gorm:"type:text;not null"`
	Notes         string         `gorm:"type:text"`
	Status        ReferralStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ReferralDate  time.Time      `gorm:"not null"`
	CompletedDate *time.Time
}

func (Referral) TableName() string {
	return "referrals"
}

// CanMoveTo reports whether next is a legal successor of the current
// status. Completed and cancelled referrals never change.
func (r *Referral) CanMoveTo(next ReferralStatus) bool {
	for _, s := range referralTransitions[r.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsFinal reports whether the referral can no longer change status.
func (r *Referral) IsFinal() bool {
	return len(referralTransitions[r.Status]) == 0
}

// ReferralDetail is a referral enriched with display names at read time.
type ReferralDetail struct {
	Referral
	PatientName    string
	FromDoctorName string
	ToDoctorName   string
}

// SoapNote is the structured clinical note of one appointment.
type SoapNote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Subjective    string    `gorm:"type:text"`
	Objective     string    `gorm:"type:text"`
	Assessment    string    `gorm:"type:text"`
	Plan          string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (SoapNote) TableName() string {
	return "soap_notes"
}

// RefillStatus tracks a patient's request to renew a prescription
type RefillStatus string

const (
	RefillStatusRequested RefillStatus = "requested"
	RefillStatusApproved  RefillStatus = "approved"
	RefillStatusDenied    RefillStatus = "denied"
	RefillStatusCompleted RefillStatus = "completed"
)

func ParseRefillStatus(s string) (RefillStatus, bool) {
	switch st := RefillStatus(s); st {
	case RefillStatusRequested, RefillStatusApproved, RefillStatusDenied, RefillStatusCompleted:
		return st, true
	}
	return "", false
}

var refillTransitions = map[RefillStatus][]RefillStatus{
	RefillStatusRequested: {RefillStatusApproved, RefillStatusDenied},
	RefillStatusApproved:  {RefillStatusCompleted},
}

type RefillRequest struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID         uuid.UUID    `gorm:"type:uuid;not null;index"`
	PrescriptionID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	DoctorID          uuid.UUID    `gorm:"type:uuid;not null;index"`
	RequestDate       time.Time    `gorm:"not null"`
	Status            RefillStatus `gorm:"type:varchar(20);not null;default:'requested'"`
	Notes             string       `gorm:"type:text"`
	ApprovedDate      *time.Time
	NewPrescriptionID *uuid.UUID `gorm:"type:uuid"`
}

func (RefillRequest) TableName() string {
	return "refill_requests"
}

func (r *RefillRequest) CanMoveTo(next RefillStatus) bool {
	for _, s := range refillTransitions[r.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsOpen reports whether the request still awaits a decision or fulfilment.
func (r *RefillRequest) IsOpen() bool {
	return r.Status == RefillStatusRequested || r.Status == RefillStatusApproved
}

// RefillRequestDetail is a refill request enriched with display names.
type RefillRequestDetail struct {
	RefillRequest
	PatientName string
	DoctorName  string
	Diagnosis   string
}
