package model

import (
	"time"
)

type Assignment struct {
	ID        AssignmentID `db:"id" json:"id"`
	DoctorID  DoctorID     `db:"doctor_id" json:"doctor_id"`
	PatientID PatientID    `db:"patient_id" json:"patient_id"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

type AssignRequest struct {
	DoctorID  DoctorID  `json:"doctor_id" binding:"required"`
	PatientID PatientID `json:"patient_id" binding:"required"`
}

type Caregiver struct {
	ID        CaregiverID `db:"caregiver_id" json:"caregiver_id"`
	PatientID PatientID   `db:"patient_id" json:"patient_id"`
	Name      string      `db:"name" json:"name"`
	Email     *string     `db:"email" json:"email,omitempty"`
	Phone     *string     `db:"phone" json:"phone,omitempty"`
	Relation  *string     `db:"relation" json:"relation,omitempty"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

type CaregiverRequest struct {
	Name     string  `json:"name" binding:"required,notblank"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Relation *string `json:"relation"`
}

type CaregiverUpdate struct {
	Name     *string `json:"name" binding:"omitempty,notblank"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Relation *string `json:"relation"`
}

func (u CaregiverUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Relation == nil
}

type ChronicDisease struct {
	ID            ChronicDiseaseID `db:"disease_id" json:"disease_id"`
	PatientID     PatientID        `db:"patient_id" json:"patient_id"`
	DiseaseName   string           `db:"disease_name" json:"disease_name"`
	Description   *string          `db:"description" json:"description,omitempty"`
	DiagnosedDate *Date            `db:"diagnosed_date" json:"diagnosed_date,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

type ChronicDiseaseRequest struct {
	DiseaseName   string  `json:"disease_name" binding:"required,notblank"`
	Description   *string `json:"description"`
	DiagnosedDate *Date   `json:"diagnosed_date"`
}

type ChronicDiseaseUpdate struct {
	DiseaseName   *string `json:"disease_name" binding:"omitempty,notblank"`
	Description   *string `json:"description"`
	DiagnosedDate *Date   `json:"diagnosed_date"`
}

func (u ChronicDiseaseUpdate) Empty() bool {
	return u.DiseaseName == nil && u.Description == nil && u.DiagnosedDate == nil
}
