package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "PENDING"
	AppointmentStatusAccepted AppointmentStatus = "ACCEPTED"
	AppointmentStatusRejected AppointmentStatus = "REJECTED"
)

// Terminal reports whether no further transition is defined from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusAccepted || s == AppointmentStatusRejected
}

type Appointment struct {
	ID          AppointmentID     `db:"appointment_id" json:"appointment_id"`
	PatientID   PatientID         `db:"patient_id" json:"patient_id"`
	DoctorID    DoctorID          `db:"doctor_id" json:"doctor_id"`
	Department  string            `db:"department" json:"department"`
	Reason      *string           `db:"reason" json:"reason,omitempty"`
	ScheduledAt *time.Time        `db:"scheduled_at" json:"scheduled_at,omitempty"`
	Status      AppointmentStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentView is an appointment joined with the counterpart's display fields.
type AppointmentView struct {
	Appointment
	DoctorName           *string `db:"doctor_name" json:"doctor_name,omitempty"`
	DoctorSpecialization *string `db:"doctor_specialization" json:"doctor_specialization,omitempty"`
	PatientName          *string `db:"patient_name" json:"patient_name,omitempty"`
	PatientEmail         *string `db:"patient_email" json:"patient_email,omitempty"`
}

type BookAppointmentRequest struct {
	DoctorID    DoctorID   `json:"doctor_id" binding:"required"`
	Department  string     `json:"department" binding:"required,notblank"`
	Reason      *string    `json:"reason"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}
