package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/healthapp-api/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNoTransition is returned when a conditional status update matched no row.
	ErrNoTransition = errors.New("status transition not applied")
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		GetByID(ctx context.Context, id model.PatientID) (*model.Patient, error)
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		Update(ctx context.Context, id model.PatientID, update model.PatientUpdate) (*model.Patient, error)
		// List returns every patient, newest first.
		List(ctx context.Context) ([]*model.Patient, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		GetByID(ctx context.Context, id model.DoctorID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error)
		Update(ctx context.Context, id model.DoctorID, update model.DoctorUpdate) (*model.Doctor, error)
		UpdateStatus(ctx context.Context, id model.DoctorID, status model.DoctorStatus) (*model.Doctor, error)
	}

	DoctorProfileRepository interface {
		Upsert(ctx context.Context, profile *model.DoctorProfile) error
		GetByDoctorID(ctx context.Context, id model.DoctorID) (*model.DoctorProfile, error)
	}

	PharmacyRepository interface {
		Create(ctx context.Context, pharmacy *model.Pharmacy) error
		GetByUsername(ctx context.Context, username string) (*model.Pharmacy, error)
	}

	AssignmentRepository interface {
		// Assign inserts the pair if absent and reports whether a new row was created.
		Assign(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (*model.Assignment, bool, error)
		Get(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (*model.Assignment, error)
		ListPatients(ctx context.Context, doctorID model.DoctorID) ([]*model.Patient, error)
		ListDoctors(ctx context.Context, patientID model.PatientID) ([]*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		GetByID(ctx context.Context, id model.AppointmentID) (*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.AppointmentView, error)
		ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.AppointmentView, error)
		// ListAll returns every appointment joined with both parties, newest first.
		ListAll(ctx context.Context) ([]*model.AppointmentView, error)
		// TransitionStatus moves the appointment from one status to another only if it is still in from.
		TransitionStatus(ctx context.Context, id model.AppointmentID, from, to model.AppointmentStatus) (*model.Appointment, error)
	}

	ConsultationRepository interface {
		Create(ctx context.Context, consultation *model.Consultation) error
		GetByID(ctx context.Context, id model.ConsultationID) (*model.Consultation, error)
		ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.Consultation, error)
		ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.Consultation, error)
		// Transition applies t only while the consultation is still PENDING.
		Transition(ctx context.Context, id model.ConsultationID, t model.ConsultationTransition) (*model.Consultation, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		GetByID(ctx context.Context, id model.PrescriptionID) (*model.PrescriptionView, error)
		GetByAppointmentID(ctx context.Context, id model.AppointmentID) (*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.PrescriptionView, error)
		ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.PrescriptionView, error)
		AddMedicine(ctx context.Context, line *model.MedicineLine) error
		ListMedicines(ctx context.Context, id model.PrescriptionID) ([]*model.MedicineLine, error)
		GetMedicine(ctx context.Context, id model.MedicineID) (*model.MedicineLine, error)
		UpdateMedicine(ctx context.Context, id model.MedicineID, update model.MedicineUpdate) (*model.MedicineLine, error)
	}

	TestReportRepository interface {
		// CreateWithNotification writes the report, its notification and the outbox event atomically.
		CreateWithNotification(ctx context.Context, c *model.ReportCreation) error
		GetByID(ctx context.Context, id model.TestReportID) (*model.TestReport, error)
		ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.TestReport, error)
		ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.TestReport, error)
		Delete(ctx context.Context, id model.TestReportID) error
		ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]*model.LabNotificationView, error)
		GetNotification(ctx context.Context, id model.NotificationID) (*model.LabNotification, error)
		// UpdateNotificationStatus sets to only while the current status is one of from.
		UpdateNotificationStatus(ctx context.Context, id model.NotificationID, from []model.NotificationStatus, to model.NotificationStatus) (*model.LabNotification, error)
	}

	CaregiverRepository interface {
		Create(ctx context.Context, caregiver *model.Caregiver) error
		GetByID(ctx context.Context, id model.CaregiverID) (*model.Caregiver, error)
		ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.Caregiver, error)
		Update(ctx context.Context, id model.CaregiverID, update model.CaregiverUpdate) (*model.Caregiver, error)
	}

	ChronicDiseaseRepository interface {
		Create(ctx context.Context, disease *model.ChronicDisease) error
		GetByID(ctx context.Context, id model.ChronicDiseaseID) (*model.ChronicDisease, error)
		ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.ChronicDisease, error)
		Update(ctx context.Context, id model.ChronicDiseaseID, update model.ChronicDiseaseUpdate) (*model.ChronicDisease, error)
	}

	OutboxRepository interface {
		// ClaimPendingEvents leases up to limit due events so concurrent workers skip them until lease expires.
		ClaimPendingEvents(ctx context.Context, limit int, lease time.Duration) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error)
	}
)
