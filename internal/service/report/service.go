package report

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
	ErrReportNotFound       = apperrors.NotFound("test report", nil)
	ErrNotificationNotFound = apperrors.NotFound("lab notification", nil)
	ErrInvalidUploader      = apperrors.BadRequest("uploaded_by must be patient or doctor", nil)
	ErrInvalidStatus        = apperrors.BadRequest("status must be PENDING, PROCESSED or COMPLETED", nil)
	ErrUploaderMismatch     = apperrors.Forbidden("uploaded_by must match the caller")
	ErrForbidden            = apperrors.Forbidden("report belongs to another patient or doctor")
	ErrNotAssigned          = apperrors.NotAssigned()
	ErrBackwardsStatus      = apperrors.Conflict("lab notification status cannot move backwards")
)

type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo        repository.TestReportRepository
	assignments repository.AssignmentRepository
	auditor     Auditor
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
}

func NewService(
	repo repository.TestReportRepository,
	assignments repository.AssignmentRepository,
	auditor Auditor,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		auditor:     auditor,
		metrics:     metrics,
		logger:      logger.With().Str("component", "report").Logger(),
		now:         time.Now,
	}
}

// Create stores the report together with its PENDING lab notification and the lab_report.created event.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateTestReportRequest) (*model.ReportCreation, error) {
	if !req.UploadedBy.Valid() {
		return nil, ErrInvalidUploader
	}
	switch req.UploadedBy {
	case model.UploadedByPatient:
		if !actor.IsPatient(req.PatientID) {
			return nil, ErrUploaderMismatch
		}
	case model.UploadedByDoctor:
		if !actor.IsDoctor(req.DoctorID) {
			return nil, ErrUploaderMismatch
		}
	}

	link, err := s.assignments.Get(ctx, req.DoctorID, req.PatientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAssigned
		}
		return nil, apperrors.Internal(err)
	}

	now := s.now().UTC()
	title := strings.TrimSpace(req.Title)
	c := &model.ReportCreation{
		Report: &model.TestReport{
			PatientID:    req.PatientID,
			DoctorID:     req.DoctorID,
			AssignmentID: &link.ID,
			Title:        title,
			Description:  req.Description,
			Result:       req.Result,
			UploadedBy:   req.UploadedBy,
			CreatedAt:    now,
		},
		Notification: &model.LabNotification{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			Title:     req.UploadedBy.NotificationTitle(title),
			Status:    model.NotificationStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.repo.CreateWithNotification(ctx, c); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityTestReport,
		EntityID:   int64(c.Report.ID),
		Action:     model.AuditActionCreate,
		Actor:      actor,
	})
	s.logger.Info().
		Int64("report_id", int64(c.Report.ID)).
		Int64("notification_id", int64(c.Notification.ID)).
		Msg("test report uploaded")
	return c, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id model.TestReportID) (*model.TestReport, error) {
	return s.owned(ctx, actor, id)
}

// Delete removes the report; its lab notification goes with it.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id model.TestReportID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrReportNotFound)
	}
	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityTestReport,
		EntityID:   int64(id),
		Action:     model.AuditActionDelete,
		Actor:      actor,
	})
	return nil
}

func (s *Service) ListForPatient(ctx context.Context, actor model.Actor, id model.PatientID) ([]*model.TestReport, error) {
	if !actor.IsPatient(id) {
		return nil, ErrForbidden
	}
	reports, err := s.repo.ListByPatient(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}

func (s *Service) ListForDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) ([]*model.TestReport, error) {
	if !actor.IsDoctor(id) {
		return nil, ErrForbidden
	}
	reports, err := s.repo.ListByDoctor(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}

// ListNotifications returns every notification to an admin and only their own to a doctor.
func (s *Service) ListNotifications(ctx context.Context, actor model.Actor, status *model.NotificationStatus) ([]*model.LabNotificationView, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	filter := model.NotificationFilter{Status: status}
	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleDoctor:
		id := model.DoctorID(actor.ID)
		filter.DoctorID = &id
	default:
		return nil, ErrForbidden
	}

	list, err := s.repo.ListNotifications(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

// UpdateNotificationStatus only moves forward through PENDING, PROCESSED, COMPLETED. Setting the current
// status again succeeds without a write.
func (s *Service) UpdateNotificationStatus(ctx context.Context, actor model.Actor, id model.NotificationID, status model.NotificationStatus) (*model.LabNotification, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotificationNotFound)
	}
	if !actor.IsAdmin() && !actor.IsDoctor(current.DoctorID) {
		return nil, ErrForbidden
	}
	if current.Status == status {
		return current, nil
	}
	if !reachable(status, current.Status) {
		return nil, ErrBackwardsStatus
	}

	updated, err := s.repo.UpdateNotificationStatus(ctx, id, status.ReachableFrom(), status)
	if err != nil {
		if errors.Is(err, repository.ErrNoTransition) {
			return nil, ErrBackwardsStatus
		}
		return nil, mapNotFound(err, ErrNotificationNotFound)
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: model.AuditEntityLabNotification,
		EntityID:   int64(id),
		Action:     model.AuditActionTransition,
		Actor:      actor,
		From:       string(current.Status),
		To:         string(status),
	})
	s.metrics.RecordTransition(model.AuditEntityLabNotification, string(status))
	return updated, nil
}

func (s *Service) owned(ctx context.Context, actor model.Actor, id model.TestReportID) (*model.TestReport, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrReportNotFound)
	}
	if !actor.IsPatient(r.PatientID) && !actor.IsDoctor(r.DoctorID) {
		return nil, ErrForbidden
	}
	return r, nil
}

func reachable(to, from model.NotificationStatus) bool {
	for _, st := range to.ReachableFrom() {
		if st == from {
			return true
		}
	}
	return false
}

func mapNotFound(err error, sentinel *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return apperrors.Internal(err)
}
