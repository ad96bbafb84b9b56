package model

import (
	"time"
)

type Prescription struct {
	ID            PrescriptionID `db:"prescription_id" json:"prescription_id"`
	AppointmentID AppointmentID  `db:"appointment_id" json:"appointment_id"`
	DoctorID      DoctorID       `db:"doctor_id" json:"doctor_id"`
	PatientID     PatientID      `db:"patient_id" json:"patient_id"`
	Notes         *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// PrescriptionView joins the appointment and both parties.
type PrescriptionView struct {
	Prescription
	AppointmentScheduledAt *time.Time         `db:"appointment_scheduled_at" json:"appointment_scheduled_at,omitempty"`
	AppointmentStatus      *AppointmentStatus `db:"appointment_status" json:"appointment_status,omitempty"`
	DoctorName             *string            `db:"doctor_name" json:"doctor_name,omitempty"`
	PatientName            *string            `db:"patient_name" json:"patient_name,omitempty"`
	Medicines              []*MedicineLine    `db:"-" json:"medicines,omitempty"`
}

type MedicineLine struct {
	ID             MedicineID     `db:"medicine_id" json:"medicine_id"`
	PrescriptionID PrescriptionID `db:"prescription_id" json:"prescription_id"`
	Name           string         `db:"name" json:"name"`
	Dosage         *string        `db:"dosage" json:"dosage,omitempty"`
	Frequency      *string        `db:"frequency" json:"frequency,omitempty"`
	Duration       *string        `db:"duration" json:"duration,omitempty"`
	Instructions   *string        `db:"instructions" json:"instructions,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

type CreatePrescriptionRequest struct {
	AppointmentID AppointmentID `json:"appointment_id" binding:"required"`
	Notes         *string       `json:"notes"`
}

type AddMedicineRequest struct {
	Name         string  `json:"name"`
	Dosage       *string `json:"dosage"`
	Frequency    *string `json:"frequency"`
	Duration     *string `json:"duration"`
	Instructions *string `json:"instructions"`
}

// MedicineUpdate holds only the fields supplied by the caller.
type MedicineUpdate struct {
	Name         *string `json:"name"`
	Dosage       *string `json:"dosage"`
	Frequency    *string `json:"frequency"`
	Duration     *string `json:"duration"`
	Instructions *string `json:"instructions"`
}

func (u MedicineUpdate) Empty() bool {
	return u.Name == nil && u.Dosage == nil && u.Frequency == nil && u.Duration == nil && u.Instructions == nil
}
