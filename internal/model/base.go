package model

// Identifiers are parsed once at the API edge and compared as typed integers everywhere else.
type (
	PatientID        int64
	DoctorID         int64
	PharmacyID       int64
	AssignmentID     int64
	AppointmentID    int64
	ConsultationID   int64
	PrescriptionID   int64
	MedicineID       int64
	TestReportID     int64
	NotificationID   int64
	CaregiverID      int64
	ChronicDiseaseID int64
)

// Role is the kind of principal a bearer token was issued to.
type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RolePharmacy Role = "pharmacy"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RolePharmacy, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	Role Role  `json:"role"`
	ID   int64 `json:"id"`
}

func (a Actor) IsPatient(id PatientID) bool {
	return a.Role == RolePatient && PatientID(a.ID) == id
}

func (a Actor) IsDoctor(id DoctorID) bool {
	return a.Role == RoleDoctor && DoctorID(a.ID) == id
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
