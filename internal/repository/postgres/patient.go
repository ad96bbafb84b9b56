package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const patientColumns = `patient_id, name, email, phone, address, dob, password, created_at`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (name, email, phone, address, dob, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING patient_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.Address,
		patient.DOB,
		patient.PasswordHash,
	).Scan(&patient.ID, &patient.CreatedAt)
	return mapError(err, "create patient")
}

func (r *patientRepository) GetByID(ctx context.Context, id model.PatientID) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `SELECT `+patientColumns+` FROM patients WHERE patient_id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `SELECT `+patientColumns+` FROM patients WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return nil, mapError(err, "get patient by email")
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var out []*model.Patient
	if err := r.db.SelectContext(ctx, &out, `SELECT `+patientColumns+` FROM patients ORDER BY created_at DESC, patient_id DESC`); err != nil {
		return nil, mapError(err, "list patients")
	}
	return nonNil(out), nil
}

func (r *patientRepository) Update(ctx context.Context, id model.PatientID, update model.PatientUpdate) (*model.Patient, error) {
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
	if update.Address != nil {
		record["address"] = *update.Address
	}
	if update.DOB != nil {
		record["dob"] = update.DOB.String()
	}
	if len(record) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := r.dialect.Update("patients").
		Set(record).
		Where(goqu.Ex{"patient_id": id}).
		Returning(goqu.L(patientColumns)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build patient update query: %w", err)
	}

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, args...); err != nil {
		return nil, mapError(err, "update patient")
	}
	return &patient, nil
}
