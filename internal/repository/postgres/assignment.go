package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

type assignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Assign(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (*model.Assignment, bool, error) {
	query := `
		INSERT INTO doctor_patient (doctor_id, patient_id)
		VALUES ($1, $2)
		ON CONFLICT (doctor_id, patient_id) DO NOTHING
		RETURNING id, doctor_id, patient_id, created_at
	`
	var a model.Assignment
	err := r.db.GetContext(ctx, &a, query, doctorID, patientID)
	if err == nil {
		return &a, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, mapError(err, "assign doctor to patient")
	}

	// the pair already existed
	existing, err := r.Get(ctx, doctorID, patientID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *assignmentRepository) Get(ctx context.Context, doctorID model.DoctorID, patientID model.PatientID) (*model.Assignment, error) {
	query := `
		SELECT id, doctor_id, patient_id, created_at
		FROM doctor_patient
		WHERE doctor_id = $1 AND patient_id = $2
	`
	var a model.Assignment
	if err := r.db.GetContext(ctx, &a, query, doctorID, patientID); err != nil {
		return nil, mapError(err, "get assignment")
	}
	return &a, nil
}

func (r *assignmentRepository) ListPatients(ctx context.Context, doctorID model.DoctorID) ([]*model.Patient, error) {
	query := `
		SELECT p.patient_id, p.name, p.email, p.phone, p.address, p.dob, p.password, p.created_at
		FROM patients p
		JOIN doctor_patient dp ON p.patient_id = dp.patient_id
		WHERE dp.doctor_id = $1
		ORDER BY p.name ASC
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, doctorID); err != nil {
		return nil, mapError(err, "list patients for doctor")
	}
	return nonNil(patients), nil
}

func (r *assignmentRepository) ListDoctors(ctx context.Context, patientID model.PatientID) ([]*model.Doctor, error) {
	query := `
		SELECT d.doctor_id, d.name, d.email, d.phone, d.specialization, d.status, d.password, d.created_at
		FROM doctors d
		JOIN doctor_patient dp ON d.doctor_id = dp.doctor_id
		WHERE dp.patient_id = $1
		ORDER BY d.name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, patientID); err != nil {
		return nil, mapError(err, "list doctors for patient")
	}
	return nonNil(doctors), nil
}
