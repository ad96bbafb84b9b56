package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const chronicDiseaseColumns = `disease_id, patient_id, disease_name, description, diagnosed_date, created_at`

type chronicDiseaseRepository struct {
	BaseRepository
}

func NewChronicDiseaseRepository(db *sqlx.DB) repository.ChronicDiseaseRepository {
	return &chronicDiseaseRepository{NewBaseRepository(db)}
}

func (r *chronicDiseaseRepository) Create(ctx context.Context, d *model.ChronicDisease) error {
	query := `
		INSERT INTO chronic_diseases (patient_id, disease_name, description, diagnosed_date)
		VALUES ($1, $2, $3, $4)
		RETURNING disease_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, d.PatientID, d.DiseaseName, d.Description, d.DiagnosedDate).
		Scan(&d.ID, &d.CreatedAt)
	return mapError(err, "create chronic disease")
}

func (r *chronicDiseaseRepository) GetByID(ctx context.Context, id model.ChronicDiseaseID) (*model.ChronicDisease, error) {
	var d model.ChronicDisease
	err := r.db.GetContext(ctx, &d, `SELECT `+chronicDiseaseColumns+` FROM chronic_diseases WHERE disease_id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get chronic disease")
	}
	return &d, nil
}

func (r *chronicDiseaseRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.ChronicDisease, error) {
	var out []*model.ChronicDisease
	query := `SELECT ` + chronicDiseaseColumns + ` FROM chronic_diseases WHERE patient_id = $1 ORDER BY disease_id ASC`
	if err := r.db.SelectContext(ctx, &out, query, patientID); err != nil {
		return nil, mapError(err, "list chronic diseases")
	}
	return nonNil(out), nil
}

func (r *chronicDiseaseRepository) Update(ctx context.Context, id model.ChronicDiseaseID, update model.ChronicDiseaseUpdate) (*model.ChronicDisease, error) {
	record := goqu.Record{}
	if update.DiseaseName != nil {
		record["disease_name"] = *update.DiseaseName
	}
	if update.Description != nil {
		record["description"] = *update.Description
	}
	if update.DiagnosedDate != nil {
		record["diagnosed_date"] = update.DiagnosedDate.String()
	}
	if len(record) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := r.dialect.Update("chronic_diseases").
		Set(record).
		Where(goqu.Ex{"disease_id": id}).
		Returning(goqu.L(chronicDiseaseColumns)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build chronic disease update query: %w", err)
	}

	var d model.ChronicDisease
	if err := r.db.GetContext(ctx, &d, query, args...); err != nil {
		return nil, mapError(err, "update chronic disease")
	}
	return &d, nil
}
