package consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/calendar"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/internal/service/audit"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

const (
	wallClockLayout    = "2006-01-02 15:04"
	defaultSummary     = "Medical Consultation"
	defaultDescription = "Online medical consultation"
)

// Accepted times are wall-clock in the clinic's fixed +05:30 offset.
var clinicZone = time.FixedZone("+0530", 5*60*60+30*60)

var (
	ErrConsultationNotFound = apperrors.NotFound("consultation", nil)
	ErrDoctorNotFound       = apperrors.NotFound("doctor", nil)
	ErrMissingFields        = apperrors.BadRequest("doctor_id, reason and preferred_datetime are required", nil)
	ErrInvalidTime          = apperrors.BadRequest("start_time and end_time must use YYYY-MM-DD HH:MM", nil)
	ErrInvalidWindow        = apperrors.BadRequest("end_time must be after start_time", nil)
	ErrForbidden            = apperrors.Forbidden("consultation belongs to someone else")
	ErrAlreadyDecided       = apperrors.Conflict("consultation has already been accepted or rejected")
	ErrCalendarFailed       = apperrors.ExternalService("calendar", nil)
)

type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo     repository.ConsultationRepository
	doctors  repository.DoctorRepository
	calendar calendar.Client
	auditor  Auditor
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(
	repo repository.ConsultationRepository,
	doctors repository.DoctorRepository,
	cal calendar.Client,
	auditor Auditor,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		calendar: cal,
		auditor:  auditor,
		metrics:  metrics,
		logger:   logger.With().Str("component", "consultation").Logger(),
		now:      time.Now,
	}
}

// Create opens a PENDING request from the calling patient.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	if req.PatientID != nil && !actor.IsPatient(*req.PatientID) {
		return nil, ErrForbidden
	}
	if req.DoctorID == 0 || strings.TrimSpace(req.Reason) == "" || req.PreferredDatetime == nil {
		return nil, ErrMissingFields
	}

	if _, err := s.doctors.GetByID(ctx, req.DoctorID); err != nil {
		return nil, mapNotFound(err, ErrDoctorNotFound)
	}

	now := s.now().UTC()
	c := &model.Consultation{
		PatientID:         model.PatientID(actor.ID),
		DoctorID:          req.DoctorID,
		Reason:            strings.TrimSpace(req.Reason),
		PreferredDatetime: *req.PreferredDatetime,
		Status:            model.ConsultationStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperrors.Internal(err)
	}
	return c, nil
}

func (s *Service) ListForDoctor(ctx context.Context, id model.DoctorID) ([]*model.Consultation, error) {
	list, err := s.repo.ListByDoctor(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

func (s *Service) ListForPatient(ctx context.Context, id model.PatientID) ([]*model.Consultation, error) {
	list, err := s.repo.ListByPatient(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient(c.PatientID) && !actor.IsDoctor(c.DoctorID) {
		return nil, ErrForbidden
	}
	return c, nil
}

// Accept books the meeting first and records ACCEPTED only once a join link exists.
func (s *Service) Accept(ctx context.Context, actor model.Actor, id model.ConsultationID, req *model.AcceptConsultationRequest) (*model.Consultation, error) {
	start, err := parseWallClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseWallClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}

	c, err := s.decidable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	link, err := s.calendar.CreateMeeting(ctx, calendar.Meeting{
		RequestID:   fmt.Sprintf("meet-%d", c.ID),
		Summary:     valueOr(req.Summary, defaultSummary),
		Description: valueOr(req.Description, defaultDescription),
		Start:       start,
		End:         end,
	})
	if err != nil {
		return nil, ErrCalendarFailed.Wrap(err)
	}

	startUTC, endUTC := start.UTC(), end.UTC()
	return s.transition(ctx, actor, c, model.ConsultationTransition{
		To:          model.ConsultationStatusAccepted,
		MeetingLink: &link,
		StartTime:   &startUTC,
		EndTime:     &endUTC,
	})
}

func (s *Service) Reject(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error) {
	c, err := s.decidable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, c, model.ConsultationTransition{To: model.ConsultationStatusRejected})
}

// decidable loads a consultation the actor owns and that is still PENDING.
func (s *Service) decidable(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor(c.DoctorID) {
		return nil, ErrForbidden
	}
	if c.Status != model.ConsultationStatusPending {
		return nil, ErrAlreadyDecided
	}
	return c, nil
}

func (s *Service) transition(ctx context.Context, actor model.Actor, c *model.Consultation, t model.ConsultationTransition) (*model.Consultation, error) {
	updated, err := s.repo.Transition(ctx, c.ID, t)
	if err != nil {
		if errors.Is(err, repository.ErrNoTransition) {
			return nil, ErrAlreadyDecided
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityConsultation,
		EntityID:   int64(c.ID),
		Action:     model.AuditActionTransition,
		Actor:      actor,
		From:       string(c.Status),
		To:         string(t.To),
	})
	s.metrics.RecordTransition(model.AuditEntityConsultation, string(t.To))
	s.logger.Info().
		Int64("consultation_id", int64(c.ID)).
		Int64("doctor_id", actor.ID).
		Str("to", string(t.To)).
		Msg("consultation status changed")
	return updated, nil
}

func (s *Service) load(ctx context.Context, id model.ConsultationID) (*model.Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrConsultationNotFound)
	}
	return c, nil
}

func parseWallClock(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(wallClockLayout, strings.TrimSpace(raw), clinicZone)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	return t, nil
}

func valueOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

func mapNotFound(err error, sentinel *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return apperrors.Internal(err)
}
