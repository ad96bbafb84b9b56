package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/internal/service/audit"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

var (
	ErrDoctorNotFound = apperrors.NotFound("doctor", nil)
	ErrInvalidStatus  = apperrors.BadRequest("status must be APPROVED or REJECTED", nil)
	ErrNothingToSave  = apperrors.BadRequest("no fields to update", nil)
	ErrDoctorsOnly    = apperrors.Forbidden("only doctors may edit a doctor profile")
)

const approvedKeyPrefix = "approved:"

type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

// Service serves the doctor directory. Approved listings are cached and flushed on every doctor write.
type Service struct {
	doctors  repository.DoctorRepository
	profiles repository.DoctorProfileRepository
	cache    *cache.Cache
	auditor  Auditor
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewService(
	doctors repository.DoctorRepository,
	profiles repository.DoctorProfileRepository,
	ttl, cleanupInterval time.Duration,
	auditor Auditor,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *Service {
	return &Service{
		doctors:  doctors,
		profiles: profiles,
		cache:    cache.New(ttl, cleanupInterval),
		auditor:  auditor,
		metrics:  metrics,
		logger:   logger.With().Str("component", "directory").Logger(),
	}
}

// ListApproved returns approved doctors, optionally narrowed to a specialization (case-insensitive).
func (s *Service) ListApproved(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	key := approvedKeyPrefix + strings.ToLower(strings.TrimSpace(specialization))
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.doctors.List(ctx, model.DoctorFilter{
		Specialization: strings.TrimSpace(specialization),
		Status:         model.DoctorStatusApproved,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.SetDefault(key, doctors)
	return doctors, nil
}

// GetDoctor hides unapproved doctors from everyone but admins and the doctor themselves.
func (s *Service) GetDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) (*model.Doctor, error) {
	doctor, err := s.getDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.Status != model.DoctorStatusApproved && !actor.IsAdmin() && !actor.IsDoctor(id) {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (s *Service) Me(ctx context.Context, actor model.Actor) (*model.Doctor, error) {
	return s.getDoctor(ctx, model.DoctorID(actor.ID))
}

func (s *Service) UpdateMe(ctx context.Context, actor model.Actor, update model.DoctorUpdate) (*model.Doctor, error) {
	if update.Empty() {
		return nil, ErrNothingToSave
	}
	doctor, err := s.doctors.Update(ctx, model.DoctorID(actor.ID), update)
	if err != nil {
		return nil, mapDoctorError(err)
	}
	s.cache.Flush()
	return doctor, nil
}

// AdminList returns doctors in every approval state, optionally filtered by status.
func (s *Service) AdminList(ctx context.Context, status model.DoctorStatus) ([]*model.Doctor, error) {
	doctors, err := s.doctors.List(ctx, model.DoctorFilter{Status: status})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

func (s *Service) SetStatus(ctx context.Context, actor model.Actor, id model.DoctorID, status model.DoctorStatus) (*model.Doctor, error) {
	if status != model.DoctorStatusApproved && status != model.DoctorStatusRejected {
		return nil, ErrInvalidStatus
	}

	current, err := s.getDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mapDoctorError(err)
	}
	s.cache.Flush()

	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityDoctor,
		EntityID:   int64(id),
		Action:     model.AuditActionStatusChange,
		Actor:      actor,
		From:       string(current.Status),
		To:         string(status),
	})
	s.metrics.RecordTransition(model.AuditEntityDoctor, string(status))
	s.logger.Info().
		Int64("doctor_id", int64(id)).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("doctor status changed")
	return doctor, nil
}

func (s *Service) UpsertProfile(ctx context.Context, actor model.Actor, req *model.UpsertDoctorProfileRequest) (*model.DoctorProfile, error) {
	if actor.Role != model.RoleDoctor {
		return nil, ErrDoctorsOnly
	}

	languages := model.StringSlice{}
	for _, l := range req.LanguagesSpoken {
		if l = strings.TrimSpace(l); l != "" {
			languages = append(languages, l)
		}
	}

	profile := &model.DoctorProfile{
		DoctorID:          model.DoctorID(actor.ID),
		Bio:               req.Bio,
		SubSpecialization: req.SubSpecialization,
		ExperienceYears:   req.ExperienceYears,
		Qualifications:    req.Qualifications,
		LanguagesSpoken:   languages,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.Flush()
	return profile, nil
}

// GetProfile returns an empty profile for a doctor who has not written one yet. Profiles of unapproved
// doctors are visible to admins and the doctor only, as with GetDoctor.
func (s *Service) GetProfile(ctx context.Context, actor model.Actor, id model.DoctorID) (*model.DoctorProfile, error) {
	if _, err := s.GetDoctor(ctx, actor, id); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByDoctorID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.DoctorProfile{DoctorID: id, LanguagesSpoken: model.StringSlice{}}, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return profile, nil
}

func (s *Service) getDoctor(ctx context.Context, id model.DoctorID) (*model.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, mapDoctorError(err)
	}
	return doctor, nil
}

func mapDoctorError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDoctorNotFound
	}
	return apperrors.Internal(err)
}
