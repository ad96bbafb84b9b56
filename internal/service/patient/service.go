package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

var (
	ErrPatientNotFound   = apperrors.NotFound("patient", nil)
	ErrCaregiverNotFound = apperrors.NotFound("caregiver", nil)
	ErrDiseaseNotFound   = apperrors.NotFound("chronic disease", nil)
	ErrForbidden         = apperrors.Forbidden("not allowed to access this patient's records")
	ErrNothingToSave     = apperrors.BadRequest("no fields to update", nil)
	ErrEmailTaken        = apperrors.Conflict("email is already registered")
	ErrAdminOnly         = apperrors.Forbidden("only an admin can list all patients")
)

// AssignmentChecker reports whether a doctor is linked to a patient.
type AssignmentChecker interface {
	IsAssigned(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (bool, error)
}

type PatientService interface {
	GetProfile(ctx context.Context, actor model.Actor) (*model.Patient, error)
	UpdateProfile(ctx context.Context, actor model.Actor, update model.PatientUpdate) (*model.Patient, error)
	ListAll(ctx context.Context, actor model.Actor) ([]*model.Patient, error)

	AddCaregiver(ctx context.Context, actor model.Actor, patientID model.PatientID, req *model.CaregiverRequest) (*model.Caregiver, error)
	ListCaregivers(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.Caregiver, error)
	UpdateCaregiver(ctx context.Context, actor model.Actor, id model.CaregiverID, update model.CaregiverUpdate) (*model.Caregiver, error)

	AddChronicDisease(ctx context.Context, actor model.Actor, patientID model.PatientID, req *model.ChronicDiseaseRequest) (*model.ChronicDisease, error)
	ListChronicDiseases(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.ChronicDisease, error)
	UpdateChronicDisease(ctx context.Context, actor model.Actor, id model.ChronicDiseaseID, update model.ChronicDiseaseUpdate) (*model.ChronicDisease, error)

	Tips(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]string, error)
}

type Service struct {
	repo        repository.PatientRepository
	caregivers  repository.CaregiverRepository
	diseases    repository.ChronicDiseaseRepository
	assignments AssignmentChecker
	logger      zerolog.Logger
}

func NewService(
	repo repository.PatientRepository,
	caregivers repository.CaregiverRepository,
	diseases repository.ChronicDiseaseRepository,
	assignments AssignmentChecker,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		caregivers:  caregivers,
		diseases:    diseases,
		assignments: assignments,
		logger:      logger.With().Str("component", "patient").Logger(),
	}
}

func (s *Service) GetProfile(ctx context.Context, actor model.Actor) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, model.PatientID(actor.ID))
	if err != nil {
		return nil, mapNotFound(err, ErrPatientNotFound)
	}
	return patient, nil
}

func (s *Service) UpdateProfile(ctx context.Context, actor model.Actor, update model.PatientUpdate) (*model.Patient, error) {
	if update.Empty() {
		return nil, ErrNothingToSave
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &email
	}

	patient, err := s.repo.Update(ctx, model.PatientID(actor.ID), update)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, mapNotFound(err, ErrPatientNotFound)
	}
	return patient, nil
}

func (s *Service) ListAll(ctx context.Context, actor model.Actor) ([]*model.Patient, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

// canRead allows the patient, an admin, or a doctor assigned to the patient.
func (s *Service) canRead(ctx context.Context, actor model.Actor, patientID model.PatientID) error {
	if actor.IsPatient(patientID) || actor.IsAdmin() {
		return nil
	}
	if actor.Role != model.RoleDoctor {
		return ErrForbidden
	}
	ok, err := s.assignments.IsAssigned(ctx, model.DoctorID(actor.ID), patientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func mapNotFound(err error, sentinel *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return apperrors.Internal(err)
}
