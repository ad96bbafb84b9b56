package patient

import (
	"context"
	"strings"
	"time"

	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

// canWriteConditions allows the patient or an assigned doctor.
func (s *Service) canWriteConditions(ctx context.Context, actor model.Actor, patientID model.PatientID) error {
	if actor.IsAdmin() {
		return ErrForbidden
	}
	return s.canRead(ctx, actor, patientID)
}

func (s *Service) AddChronicDisease(ctx context.Context, actor model.Actor, patientID model.PatientID, req *model.ChronicDiseaseRequest) (*model.ChronicDisease, error) {
	if err := s.canWriteConditions(ctx, actor, patientID); err != nil {
		return nil, err
	}

	disease := &model.ChronicDisease{
		PatientID:     patientID,
		DiseaseName:   strings.TrimSpace(req.DiseaseName),
		Description:   req.Description,
		DiagnosedDate: req.DiagnosedDate,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.diseases.Create(ctx, disease); err != nil {
		return nil, apperrors.Internal(err)
	}
	return disease, nil
}

func (s *Service) ListChronicDiseases(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.ChronicDisease, error) {
	if err := s.canRead(ctx, actor, patientID); err != nil {
		return nil, err
	}
	diseases, err := s.diseases.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return diseases, nil
}

func (s *Service) UpdateChronicDisease(ctx context.Context, actor model.Actor, id model.ChronicDiseaseID, update model.ChronicDiseaseUpdate) (*model.ChronicDisease, error) {
	if update.Empty() {
		return nil, ErrNothingToSave
	}

	existing, err := s.diseases.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrDiseaseNotFound)
	}
	if err := s.canWriteConditions(ctx, actor, existing.PatientID); err != nil {
		return nil, err
	}

	disease, err := s.diseases.Update(ctx, id, update)
	if err != nil {
		return nil, mapNotFound(err, ErrDiseaseNotFound)
	}
	return disease, nil
}
