package assignment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

var (
	ErrDoctorNotFound  = apperrors.NotFound("doctor", nil)
	ErrPatientNotFound = apperrors.NotFound("patient", nil)
	ErrForbidden       = apperrors.Forbidden("only the doctor, the patient or an admin may manage this assignment")
)

type Service struct {
	repo     repository.AssignmentRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	logger   zerolog.Logger
}

func NewService(repo repository.AssignmentRepository, doctors repository.DoctorRepository, patients repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		patients: patients,
		logger:   logger.With().Str("component", "assignment").Logger(),
	}
}

// Assign links the pair and reports whether the link is new. Repeating it returns the existing link.
func (s *Service) Assign(ctx context.Context, actor model.Actor, req *model.AssignRequest) (*model.Assignment, bool, error) {
	if !actor.IsAdmin() && !actor.IsDoctor(req.DoctorID) && !actor.IsPatient(req.PatientID) {
		return nil, false, ErrForbidden
	}

	if _, err := s.doctors.GetByID(ctx, req.DoctorID); err != nil {
		return nil, false, notFound(err, ErrDoctorNotFound)
	}
	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, false, notFound(err, ErrPatientNotFound)
	}

	a, created, err := s.repo.Assign(ctx, req.DoctorID, req.PatientID)
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}
	if created {
		s.logger.Info().
			Int64("doctor_id", int64(req.DoctorID)).
			Int64("patient_id", int64(req.PatientID)).
			Msg("doctor assigned to patient")
	}
	return a, created, nil
}

func (s *Service) ListPatients(ctx context.Context, actor model.Actor, doctorID model.DoctorID) ([]*model.Patient, error) {
	if !actor.IsAdmin() && !actor.IsDoctor(doctorID) {
		return nil, ErrForbidden
	}
	patients, err := s.repo.ListPatients(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

func (s *Service) ListDoctors(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.Doctor, error) {
	if !actor.IsAdmin() && !actor.IsPatient(patientID) {
		return nil, ErrForbidden
	}
	doctors, err := s.repo.ListDoctors(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

// IsAssigned reports whether the doctor is linked to the patient.
func (s *Service) IsAssigned(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (bool, error) {
	_, err := s.repo.Get(ctx, doctorID, patientID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, apperrors.Internal(err)
	}
}

func notFound(err error, sentinel *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return apperrors.Internal(err)
}
