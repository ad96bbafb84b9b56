package model

import (
	"time"
)

type RegisterPatientRequest struct {
	Name     string  `json:"name" binding:"required,notblank"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" binding:"required"`
	Address  *string `json:"address"`
	DOB      *Date   `json:"dob"`
}

type RegisterDoctorRequest struct {
	Name           string  `json:"name" binding:"required,notblank"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	Specialization string  `json:"specialization" binding:"required,notblank"`
	Password       string  `json:"password" binding:"required"`
}

type RegisterPharmacyRequest struct {
	PharmacyName  string  `json:"pharmacy_name" binding:"required,notblank"`
	LicenseNumber string  `json:"license_number" binding:"required,notblank"`
	OwnerName     string  `json:"owner_name" binding:"required,notblank"`
	Phone         string  `json:"phone" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Address       string  `json:"address" binding:"required"`
	OpeningHours  *string `json:"opening_hours"`
	ClosingHours  *string `json:"closing_hours"`
	Username      string  `json:"username" binding:"required,notblank"`
	Password      string  `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UsernameLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token and the authenticated profile.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Role      Role        `json:"role"`
	Profile   interface{} `json:"profile,omitempty"`
}
