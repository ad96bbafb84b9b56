package patient

import (
	"context"
	"strings"
	"time"

	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

// Caregivers are managed by the patient; assigned doctors may read them.

func (s *Service) AddCaregiver(ctx context.Context, actor model.Actor, patientID model.PatientID, req *model.CaregiverRequest) (*model.Caregiver, error) {
	if !actor.IsPatient(patientID) {
		return nil, ErrForbidden
	}

	caregiver := &model.Caregiver{
		PatientID: patientID,
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     req.Phone,
		Relation:  req.Relation,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.caregivers.Create(ctx, caregiver); err != nil {
		return nil, apperrors.Internal(err)
	}
	return caregiver, nil
}

func (s *Service) ListCaregivers(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.Caregiver, error) {
	if err := s.canRead(ctx, actor, patientID); err != nil {
		return nil, err
	}
	caregivers, err := s.caregivers.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return caregivers, nil
}

func (s *Service) UpdateCaregiver(ctx context.Context, actor model.Actor, id model.CaregiverID, update model.CaregiverUpdate) (*model.Caregiver, error) {
	if update.Empty() {
		return nil, ErrNothingToSave
	}

	existing, err := s.caregivers.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrCaregiverNotFound)
	}
	if !actor.IsPatient(existing.PatientID) {
		return nil, ErrForbidden
	}

	caregiver, err := s.caregivers.Update(ctx, id, update)
	if err != nil {
		return nil, mapNotFound(err, ErrCaregiverNotFound)
	}
	return caregiver, nil
}
