// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/healthapp-api/internal/model"
)

type PatientRepository struct{ mock.Mock }

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) GetByID(ctx context.Context, id model.PatientID) (*model.Patient, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Patient)
	return v, args.Error(1)
}

func (m *PatientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	args := m.Called(ctx, email)
	v, _ := args.Get(0).(*model.Patient)
	return v, args.Error(1)
}

func (m *PatientRepository) Update(ctx context.Context, id model.PatientID, update model.PatientUpdate) (*model.Patient, error) {
	args := m.Called(ctx, id, update)
	v, _ := args.Get(0).(*model.Patient)
	return v, args.Error(1)
}

func (m *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*model.Patient)
	return v, args.Error(1)
}

type DoctorRepository struct{ mock.Mock }

func (m *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *DoctorRepository) GetByID(ctx context.Context, id model.DoctorID) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Doctor)
	return v, args.Error(1)
}

func (m *DoctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	args := m.Called(ctx, email)
	v, _ := args.Get(0).(*model.Doctor)
	return v, args.Error(1)
}

func (m *DoctorRepository) List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]*model.Doctor)
	return v, args.Error(1)
}

func (m *DoctorRepository) Update(ctx context.Context, id model.DoctorID, update model.DoctorUpdate) (*model.Doctor, error) {
	args := m.Called(ctx, id, update)
	v, _ := args.Get(0).(*model.Doctor)
	return v, args.Error(1)
}

func (m *DoctorRepository) UpdateStatus(ctx context.Context, id model.DoctorID, status model.DoctorStatus) (*model.Doctor, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*model.Doctor)
	return v, args.Error(1)
}

type DoctorProfileRepository struct{ mock.Mock }

func (m *DoctorProfileRepository) Upsert(ctx context.Context, profile *model.DoctorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *DoctorProfileRepository) GetByDoctorID(ctx context.Context, id model.DoctorID) (*model.DoctorProfile, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.DoctorProfile)
	return v, args.Error(1)
}

type PharmacyRepository struct{ mock.Mock }

func (m *PharmacyRepository) Create(ctx context.Context, pharmacy *model.Pharmacy) error {
	return m.Called(ctx, pharmacy).Error(0)
}

func (m *PharmacyRepository) GetByUsername(ctx context.Context, username string) (*model.Pharmacy, error) {
	args := m.Called(ctx, username)
	v, _ := args.Get(0).(*model.Pharmacy)
	return v, args.Error(1)
}

type AssignmentRepository struct{ mock.Mock }

func (m *AssignmentRepository) Assign(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (*model.Assignment, bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	v, _ := args.Get(0).(*model.Assignment)
	return v, args.Bool(1), args.Error(2)
}

func (m *AssignmentRepository) Get(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (*model.Assignment, error) {
	args := m.Called(ctx, doctorID, patientID)
	v, _ := args.Get(0).(*model.Assignment)
	return v, args.Error(1)
}

func (m *AssignmentRepository) ListPatients(ctx context.Context, doctorID model.DoctorID) ([]*model.Patient, error) {
	args := m.Called(ctx, doctorID)
	v, _ := args.Get(0).([]*model.Patient)
	return v, args.Error(1)
}

func (m *AssignmentRepository) ListDoctors(ctx context.Context, patientID model.PatientID) ([]*model.Doctor, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.Doctor)
	return v, args.Error(1)
}

type AppointmentRepository struct{ mock.Mock }

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) GetByID(ctx context.Context, id model.AppointmentID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Appointment)
	return v, args.Error(1)
}

func (m *AppointmentRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.AppointmentView, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.AppointmentView)
	return v, args.Error(1)
}

func (m *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.AppointmentView, error) {
	args := m.Called(ctx, doctorID)
	v, _ := args.Get(0).([]*model.AppointmentView)
	return v, args.Error(1)
}

func (m *AppointmentRepository) ListAll(ctx context.Context) ([]*model.AppointmentView, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*model.AppointmentView)
	return v, args.Error(1)
}

func (m *AppointmentRepository) TransitionStatus(ctx context.Context, id model.AppointmentID, from, to model.AppointmentStatus) (*model.Appointment, error) {
	args := m.Called(ctx, id, from, to)
	v, _ := args.Get(0).(*model.Appointment)
	return v, args.Error(1)
}

type ConsultationRepository struct{ mock.Mock }

func (m *ConsultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	return m.Called(ctx, consultation).Error(0)
}

func (m *ConsultationRepository) GetByID(ctx context.Context, id model.ConsultationID) (*model.Consultation, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Consultation)
	return v, args.Error(1)
}

func (m *ConsultationRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.Consultation, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.Consultation)
	return v, args.Error(1)
}

func (m *ConsultationRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.Consultation, error) {
	args := m.Called(ctx, doctorID)
	v, _ := args.Get(0).([]*model.Consultation)
	return v, args.Error(1)
}

func (m *ConsultationRepository) Transition(ctx context.Context, id model.ConsultationID, t model.ConsultationTransition) (*model.Consultation, error) {
	args := m.Called(ctx, id, t)
	v, _ := args.Get(0).(*model.Consultation)
	return v, args.Error(1)
}

type PrescriptionRepository struct{ mock.Mock }

func (m *PrescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	return m.Called(ctx, prescription).Error(0)
}

func (m *PrescriptionRepository) GetByID(ctx context.Context, id model.PrescriptionID) (*model.PrescriptionView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.PrescriptionView)
	return v, args.Error(1)
}

func (m *PrescriptionRepository) GetByAppointmentID(ctx context.Context, id model.AppointmentID) (*model.Prescription, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Prescription)
	return v, args.Error(1)
}

func (m *PrescriptionRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.PrescriptionView, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.PrescriptionView)
	return v, args.Error(1)
}

func (m *PrescriptionRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.PrescriptionView, error) {
	args := m.Called(ctx, doctorID)
	v, _ := args.Get(0).([]*model.PrescriptionView)
	return v, args.Error(1)
}

func (m *PrescriptionRepository) AddMedicine(ctx context.Context, line *model.MedicineLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *PrescriptionRepository) ListMedicines(ctx context.Context, id model.PrescriptionID) ([]*model.MedicineLine, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).([]*model.MedicineLine)
	return v, args.Error(1)
}

func (m *PrescriptionRepository) GetMedicine(ctx context.Context, id model.MedicineID) (*model.MedicineLine, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.MedicineLine)
	return v, args.Error(1)
}

func (m *PrescriptionRepository) UpdateMedicine(ctx context.Context, id model.MedicineID, update model.MedicineUpdate) (*model.MedicineLine, error) {
	args := m.Called(ctx, id, update)
	v, _ := args.Get(0).(*model.MedicineLine)
	return v, args.Error(1)
}

type TestReportRepository struct{ mock.Mock }

func (m *TestReportRepository) CreateWithNotification(ctx context.Context, c *model.ReportCreation) error {
	return m.Called(ctx, c).Error(0)
}

func (m *TestReportRepository) GetByID(ctx context.Context, id model.TestReportID) (*model.TestReport, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.TestReport)
	return v, args.Error(1)
}

func (m *TestReportRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.TestReport, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.TestReport)
	return v, args.Error(1)
}

func (m *TestReportRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.TestReport, error) {
	args := m.Called(ctx, doctorID)
	v, _ := args.Get(0).([]*model.TestReport)
	return v, args.Error(1)
}

func (m *TestReportRepository) Delete(ctx context.Context, id model.TestReportID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TestReportRepository) ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]*model.LabNotificationView, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]*model.LabNotificationView)
	return v, args.Error(1)
}

func (m *TestReportRepository) GetNotification(ctx context.Context, id model.NotificationID) (*model.LabNotification, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.LabNotification)
	return v, args.Error(1)
}

func (m *TestReportRepository) UpdateNotificationStatus(ctx context.Context, id model.NotificationID, from []model.NotificationStatus, to model.NotificationStatus) (*model.LabNotification, error) {
	args := m.Called(ctx, id, from, to)
	v, _ := args.Get(0).(*model.LabNotification)
	return v, args.Error(1)
}

type CaregiverRepository struct{ mock.Mock }

func (m *CaregiverRepository) Create(ctx context.Context, caregiver *model.Caregiver) error {
	return m.Called(ctx, caregiver).Error(0)
}

func (m *CaregiverRepository) GetByID(ctx context.Context, id model.CaregiverID) (*model.Caregiver, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Caregiver)
	return v, args.Error(1)
}

func (m *CaregiverRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.Caregiver, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.Caregiver)
	return v, args.Error(1)
}

func (m *CaregiverRepository) Update(ctx context.Context, id model.CaregiverID, update model.CaregiverUpdate) (*model.Caregiver, error) {
	args := m.Called(ctx, id, update)
	v, _ := args.Get(0).(*model.Caregiver)
	return v, args.Error(1)
}

type ChronicDiseaseRepository struct{ mock.Mock }

func (m *ChronicDiseaseRepository) Create(ctx context.Context, disease *model.ChronicDisease) error {
	return m.Called(ctx, disease).Error(0)
}

func (m *ChronicDiseaseRepository) GetByID(ctx context.Context, id model.ChronicDiseaseID) (*model.ChronicDisease, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.ChronicDisease)
	return v, args.Error(1)
}

func (m *ChronicDiseaseRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.ChronicDisease, error) {
	args := m.Called(ctx, patientID)
	v, _ := args.Get(0).([]*model.ChronicDisease)
	return v, args.Error(1)
}

func (m *ChronicDiseaseRepository) Update(ctx context.Context, id model.ChronicDiseaseID, update model.ChronicDiseaseUpdate) (*model.ChronicDisease, error) {
	args := m.Called(ctx, id, update)
	v, _ := args.Get(0).(*model.ChronicDisease)
	return v, args.Error(1)
}

type OutboxRepository struct{ mock.Mock }

func (m *OutboxRepository) ClaimPendingEvents(ctx context.Context, limit int, lease time.Duration) ([]*model.OutboxEvent, error) {
	args := m.Called(ctx, limit, lease)
	v, _ := args.Get(0).([]*model.OutboxEvent)
	return v, args.Error(1)
}

func (m *OutboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error {
	return m.Called(ctx, id, status, errorMessage, retryAt).Error(0)
}

func (m *OutboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type AuditRepository struct{ mock.Mock }

func (m *AuditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepository) List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]*model.AuditLog)
	return v, args.Error(1)
}
