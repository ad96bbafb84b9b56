package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const consultationColumns = `consultant_id, patient_id, doctor_id, reason, preferred_datetime, status,
	meeting_link, start_time, end_time, created_at, updated_at`

type consultationRepository struct {
	db *sqlx.DB
}

func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, c *model.Consultation) error {
	query := `
		INSERT INTO consultants (patient_id, doctor_id, reason, preferred_datetime, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING consultant_id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		c.PatientID,
		c.DoctorID,
		c.Reason,
		c.PreferredDatetime,
		c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err, "create consultation")
}

func (r *consultationRepository) GetByID(ctx context.Context, id model.ConsultationID) (*model.Consultation, error) {
	var c model.Consultation
	err := r.db.GetContext(ctx, &c, `SELECT `+consultationColumns+` FROM consultants WHERE consultant_id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get consultation")
	}
	return &c, nil
}

func (r *consultationRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.Consultation, error) {
	var out []*model.Consultation
	query := `SELECT ` + consultationColumns + ` FROM consultants WHERE patient_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, patientID); err != nil {
		return nil, mapError(err, "list patient consultations")
	}
	return nonNil(out), nil
}

func (r *consultationRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.Consultation, error) {
	var out []*model.Consultation
	query := `SELECT ` + consultationColumns + ` FROM consultants WHERE doctor_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, doctorID); err != nil {
		return nil, mapError(err, "list doctor consultations")
	}
	return nonNil(out), nil
}

func (r *consultationRepository) Transition(ctx context.Context, id model.ConsultationID, t model.ConsultationTransition) (*model.Consultation, error) {
	query := `
		UPDATE consultants
		SET status = $1, meeting_link = $2, start_time = $3, end_time = $4, updated_at = NOW()
		WHERE consultant_id = $5 AND status = $6
		RETURNING ` + consultationColumns
	var c model.Consultation
	err := r.db.GetContext(ctx, &c, query,
		t.To,
		t.MeetingLink,
		t.StartTime,
		t.EndTime,
		id,
		model.ConsultationStatusPending,
	)
	if err != nil {
		return nil, mapTransitionError(err, "transition consultation")
	}
	return &c, nil
}
