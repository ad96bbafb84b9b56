package model

import (
	"time"
)

type ConsultationStatus string

const (
	ConsultationStatusPending  ConsultationStatus = "PENDING"
	ConsultationStatusAccepted ConsultationStatus = "ACCEPTED"
	ConsultationStatusRejected ConsultationStatus = "REJECTED"
)

type Consultation struct {
	ID                ConsultationID     `db:"consultant_id" json:"consultant_id"`
	PatientID         PatientID          `db:"patient_id" json:"patient_id"`
	DoctorID          DoctorID           `db:"doctor_id" json:"doctor_id"`
	Reason            string             `db:"reason" json:"reason"`
	PreferredDatetime time.Time          `db:"preferred_datetime" json:"preferred_datetime"`
	Status            ConsultationStatus `db:"status" json:"status"`
	MeetingLink       *string            `db:"meeting_link" json:"meeting_link"`
	StartTime         *time.Time         `db:"start_time" json:"start_time,omitempty"`
	EndTime           *time.Time         `db:"end_time" json:"end_time,omitempty"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

type CreateConsultationRequest struct {
	PatientID         *PatientID `json:"patient_id"`
	DoctorID          DoctorID   `json:"doctor_id" binding:"required"`
	Reason            string     `json:"reason" binding:"required,notblank"`
	PreferredDatetime *time.Time `json:"preferred_datetime" binding:"required"`
}

// AcceptConsultationRequest takes wall-clock times as "YYYY-MM-DD HH:MM".
type AcceptConsultationRequest struct {
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
}

// ConsultationTransition is the persisted result of an accept or reject.
type ConsultationTransition struct {
	To          ConsultationStatus
	MeetingLink *string
	StartTime   *time.Time
	EndTime     *time.Time
}
