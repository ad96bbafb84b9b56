package prescription

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/internal/service/audit"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

var (
	ErrAppointmentNotFound     = apperrors.NotFound("appointment", nil)
	ErrPrescriptionNotFound    = apperrors.NotFound("prescription", nil)
	ErrMedicineNotFound        = apperrors.NotFound("medicine", nil)
	ErrForbidden               = apperrors.Forbidden("prescription belongs to another doctor or patient")
	ErrInvalidAppointmentState = apperrors.Conflict("prescriptions can only be written for accepted appointments")
	ErrDuplicatePrescription   = apperrors.Conflict("a prescription already exists for this appointment")
	ErrBlankMedicineName       = apperrors.BadRequest("medicine name is required", nil)
)

type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo         repository.PrescriptionRepository
	appointments repository.AppointmentRepository
	auditor      Auditor
	logger       zerolog.Logger
	now          func() time.Time
}

func NewService(repo repository.PrescriptionRepository, appointments repository.AppointmentRepository, auditor Auditor, logger zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		auditor:      auditor,
		logger:       logger.With().Str("component", "prescription").Logger(),
		now:          time.Now,
	}
}

// Create writes the single prescription allowed for an accepted appointment of the calling doctor.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	apt, err := s.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, mapNotFound(err, ErrAppointmentNotFound)
	}
	if !actor.IsDoctor(apt.DoctorID) {
		return nil, ErrForbidden
	}
	if apt.Status != model.AppointmentStatusAccepted {
		return nil, ErrInvalidAppointmentState
	}

	_, err = s.repo.GetByAppointmentID(ctx, apt.ID)
	switch {
	case err == nil:
		return nil, ErrDuplicatePrescription
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Internal(err)
	}

	p := &model.Prescription{
		AppointmentID: apt.ID,
		DoctorID:      apt.DoctorID,
		PatientID:     apt.PatientID,
		Notes:         req.Notes,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// lost a race with a concurrent create; the unique index decides
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicatePrescription
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityPrescription,
		EntityID:   int64(p.ID),
		Action:     model.AuditActionCreate,
		Actor:      actor,
		Metadata:   map[string]int64{"appointment_id": int64(apt.ID)},
	})
	s.logger.Info().
		Int64("prescription_id", int64(p.ID)).
		Int64("appointment_id", int64(apt.ID)).
		Msg("prescription created")
	return p, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id model.PrescriptionID) (*model.PrescriptionView, error) {
	return s.readable(ctx, actor, id)
}

func (s *Service) ListForPatient(ctx context.Context, actor model.Actor, id model.PatientID) ([]*model.PrescriptionView, error) {
	if !actor.IsPatient(id) {
		return nil, ErrForbidden
	}
	list, err := s.repo.ListByPatient(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

func (s *Service) ListForDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) ([]*model.PrescriptionView, error) {
	if !actor.IsDoctor(id) {
		return nil, ErrForbidden
	}
	list, err := s.repo.ListByDoctor(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

func (s *Service) AddMedicine(ctx context.Context, actor model.Actor, id model.PrescriptionID, req *model.AddMedicineRequest) (*model.MedicineLine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBlankMedicineName
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor(p.DoctorID) {
		return nil, ErrForbidden
	}

	line := &model.MedicineLine{
		PrescriptionID: id,
		Name:           name,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Duration:       req.Duration,
		Instructions:   req.Instructions,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.AddMedicine(ctx, line); err != nil {
		return nil, apperrors.Internal(err)
	}
	return line, nil
}

func (s *Service) ListMedicines(ctx context.Context, actor model.Actor, id model.PrescriptionID) ([]*model.MedicineLine, error) {
	if _, err := s.readable(ctx, actor, id); err != nil {
		return nil, err
	}
	lines, err := s.repo.ListMedicines(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return lines, nil
}

// UpdateMedicine overwrites only the supplied fields. An empty update is reported as not found.
func (s *Service) UpdateMedicine(ctx context.Context, actor model.Actor, id model.MedicineID, update model.MedicineUpdate) (*model.MedicineLine, error) {
	if update.Empty() {
		return nil, ErrMedicineNotFound
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrBlankMedicineName
		}
		update.Name = &name
	}

	line, err := s.repo.GetMedicine(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrMedicineNotFound)
	}
	p, err := s.load(ctx, line.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor(p.DoctorID) {
		return nil, ErrForbidden
	}

	updated, err := s.repo.UpdateMedicine(ctx, id, update)
	if err != nil {
		return nil, mapNotFound(err, ErrMedicineNotFound)
	}
	return updated, nil
}

// readable loads the prescription if the actor is its patient or its doctor.
func (s *Service) readable(ctx context.Context, actor model.Actor, id model.PrescriptionID) (*model.PrescriptionView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient(p.PatientID) && !actor.IsDoctor(p.DoctorID) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) load(ctx context.Context, id model.PrescriptionID) (*model.PrescriptionView, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrPrescriptionNotFound)
	}
	return p, nil
}

func mapNotFound(err error, sentinel *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return apperrors.Internal(err)
}
