package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const caregiverColumns = `caregiver_id, patient_id, name, email, phone, relation, created_at`

type caregiverRepository struct {
	BaseRepository
}

func NewCaregiverRepository(db *sqlx.DB) repository.CaregiverRepository {
	return &caregiverRepository{NewBaseRepository(db)}
}

func (r *caregiverRepository) Create(ctx context.Context, c *model.Caregiver) error {
	query := `
		INSERT INTO caregivers (patient_id, name, email, phone, relation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING caregiver_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, c.PatientID, c.Name, c.Email, c.Phone, c.Relation).
		Scan(&c.ID, &c.CreatedAt)
	return mapError(err, "create caregiver")
}

func (r *caregiverRepository) GetByID(ctx context.Context, id model.CaregiverID) (*model.Caregiver, error) {
	var c model.Caregiver
	err := r.db.GetContext(ctx, &c, `SELECT `+caregiverColumns+` FROM caregivers WHERE caregiver_id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get caregiver")
	}
	return &c, nil
}

func (r *caregiverRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.Caregiver, error) {
	var out []*model.Caregiver
	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE patient_id = $1 ORDER BY caregiver_id ASC`
	if err := r.db.SelectContext(ctx, &out, query, patientID); err != nil {
		return nil, mapError(err, "list caregivers")
	}
	return nonNil(out), nil
}

func (r *caregiverRepository) Update(ctx context.Context, id model.CaregiverID, update model.CaregiverUpdate) (*model.Caregiver, error) {
	record := goqu.Record{}
	if update.Name != nil {
		record["name"] = *update.Name
	}
	if update.Email != nil {
		record["email"] = *update.Email
	}
	if update.Phone != nil {
		record["phone"] = *update.Phone
	}
	if update.Relation != nil {
		record["relation"] = *update.Relation
	}
	if len(record) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := r.dialect.Update("caregivers").
		Set(record).
		Where(goqu.Ex{"caregiver_id": id}).
		Returning(goqu.L(caregiverColumns)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build caregiver update query: %w", err)
	}

	var c model.Caregiver
	if err := r.db.GetContext(ctx, &c, query, args...); err != nil {
		return nil, mapError(err, "update caregiver")
	}
	return &c, nil
}
