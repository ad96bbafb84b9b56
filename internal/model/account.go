package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type DoctorStatus string

const (
	DoctorStatusPending  DoctorStatus = "PENDING"
	DoctorStatusApproved DoctorStatus = "APPROVED"
	DoctorStatusRejected DoctorStatus = "REJECTED"
)

type Patient struct {
	ID           PatientID `db:"patient_id" json:"patient_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	DOB          *Date     `db:"dob" json:"dob,omitempty"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Doctor struct {
	ID             DoctorID     `db:"doctor_id" json:"doctor_id"`
	Name           string       `db:"name" json:"name"`
	Email          string       `db:"email" json:"email"`
	Phone          *string      `db:"phone" json:"phone,omitempty"`
	Specialization string       `db:"specialization" json:"specialization"`
	Status         DoctorStatus `db:"status" json:"status"`
	PasswordHash   string       `db:"password" json:"-"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

type Pharmacy struct {
	ID            PharmacyID `db:"pharmacy_id" json:"pharmacy_id"`
	PharmacyName  string     `db:"pharmacy_name" json:"pharmacy_name"`
	LicenseNumber string     `db:"license_number" json:"license_number"`
	OwnerName     string     `db:"owner_name" json:"owner_name"`
	Phone         string     `db:"phone" json:"phone"`
	Email         string     `db:"email" json:"email"`
	Address       string     `db:"address" json:"address"`
	OpeningHours  *string    `db:"opening_hours" json:"opening_hours,omitempty"`
	ClosingHours  *string    `db:"closing_hours" json:"closing_hours,omitempty"`
	Username      string     `db:"username" json:"username"`
	PasswordHash  string     `db:"password" json:"-"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// PatientUpdate holds the supplied fields of a profile update; nil fields are left untouched.
type PatientUpdate struct {
	Name    *string `json:"name" binding:"omitempty,notblank"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	DOB     *Date   `json:"dob"`
}

func (u PatientUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Address == nil && u.DOB == nil
}

// DoctorUpdate never carries a status; approval is an admin action.
type DoctorUpdate struct {
	Name           *string `json:"name" binding:"omitempty,notblank"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization" binding:"omitempty,notblank"`
}

func (u DoctorUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Specialization == nil
}

type DoctorFilter struct {
	Specialization string
	Status         DoctorStatus
}

type UpdateDoctorStatusRequest struct {
	Status DoctorStatus `json:"status" binding:"required"`
}

type DoctorProfile struct {
	DoctorID          DoctorID    `db:"doctor_id" json:"doctor_id"`
	Bio               *string     `db:"bio" json:"bio"`
	SubSpecialization *string     `db:"sub_specialization" json:"sub_specialization"`
	ExperienceYears   *int        `db:"experience_years" json:"experience_years"`
	Qualifications    *string     `db:"qualifications" json:"qualifications"`
	LanguagesSpoken   StringSlice `db:"languages_spoken" json:"languages_spoken"`
	UpdatedAt         *time.Time  `db:"updated_at" json:"updated_at,omitempty"`
}

type UpsertDoctorProfileRequest struct {
	Bio               *string  `json:"bio"`
	SubSpecialization *string  `json:"sub_specialization"`
	ExperienceYears   *int     `json:"experience_years" binding:"omitempty,min=0,max=80"`
	Qualifications    *string  `json:"qualifications"`
	LanguagesSpoken   []string `json:"languages_spoken"`
}

// StringSlice is stored as a JSON array.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func (s *StringSlice) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StringSlice{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported languages_spoken type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*s = out
	return nil
}
