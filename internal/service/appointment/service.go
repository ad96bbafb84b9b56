package appointment

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
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

var (
	ErrAppointmentNotFound = apperrors.NotFound("appointment", nil)
	ErrDoctorNotFound      = apperrors.NotFound("doctor", nil)
	ErrDoctorNotApproved   = &apperrors.AppError{Code: apperrors.ErrNotApproved, Message: "doctor is not approved to take appointments"}
	ErrInvalidStatus       = apperrors.BadRequest("status must be ACCEPTED or REJECTED", nil)
	ErrForbidden           = apperrors.Forbidden("appointment belongs to another doctor")
	ErrAlreadyDecided      = apperrors.Conflict("appointment has already been accepted or rejected")
	ErrAdminOnly           = apperrors.Forbidden("only an admin can list all appointments")
)

type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo    repository.AppointmentRepository
	doctors repository.DoctorRepository
	auditor Auditor
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(repo repository.AppointmentRepository, doctors repository.DoctorRepository, auditor Auditor, metrics *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		doctors: doctors,
		auditor: auditor,
		metrics: metrics,
		logger:  logger.With().Str("component", "appointment").Logger(),
		now:     time.Now,
	}
}

// Book creates a PENDING appointment with an approved doctor. Repeat bookings for the same slot are allowed.
func (s *Service) Book(ctx context.Context, actor model.Actor, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	doctor, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, apperrors.Internal(err)
	}
	if doctor.Status != model.DoctorStatusApproved {
		return nil, ErrDoctorNotApproved
	}

	now := s.now().UTC()
	apt := &model.Appointment{
		PatientID:   model.PatientID(actor.ID),
		DoctorID:    req.DoctorID,
		Department:  strings.TrimSpace(req.Department),
		Reason:      req.Reason,
		ScheduledAt: req.ScheduledAt,
		Status:      model.AppointmentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info().
		Int64("appointment_id", int64(apt.ID)).
		Int64("patient_id", int64(apt.PatientID)).
		Int64("doctor_id", int64(apt.DoctorID)).
		Msg("appointment booked")
	return apt, nil
}

func (s *Service) ListForPatient(ctx context.Context, id model.PatientID) ([]*model.AppointmentView, error) {
	appointments, err := s.repo.ListByPatient(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

func (s *Service) ListForDoctor(ctx context.Context, id model.DoctorID) ([]*model.AppointmentView, error) {
	appointments, err := s.repo.ListByDoctor(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

// ListAll is the admin console view of every appointment.
func (s *Service) ListAll(ctx context.Context, actor model.Actor) ([]*model.AppointmentView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	appointments, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

// SetStatus moves a PENDING appointment to ACCEPTED or REJECTED. Only the first decision wins.
func (s *Service) SetStatus(ctx context.Context, actor model.Actor, id model.AppointmentID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Terminal() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, apperrors.Internal(err)
	}
	if !actor.IsDoctor(current.DoctorID) {
		return nil, ErrForbidden
	}
	if current.Status != model.AppointmentStatusPending {
		return nil, ErrAlreadyDecided
	}

	updated, err := s.repo.TransitionStatus(ctx, id, model.AppointmentStatusPending, status)
	if err != nil {
		if errors.Is(err, repository.ErrNoTransition) {
			return nil, ErrAlreadyDecided
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityAppointment,
		EntityID:   int64(id),
		Action:     model.AuditActionTransition,
		Actor:      actor,
		From:       string(model.AppointmentStatusPending),
		To:         string(status),
	})
	s.metrics.RecordTransition(model.AuditEntityAppointment, string(status))
	s.logger.Info().
		Int64("appointment_id", int64(id)).
		Int64("doctor_id", actor.ID).
		Str("to", string(status)).
		Msg("appointment status changed")
	return updated, nil
}
