package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const appointmentColumns = `appointment_id, patient_id, doctor_id, department, reason, scheduled_at, status, created_at, updated_at`

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, department, reason, scheduled_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING appointment_id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		a.PatientID,
		a.DoctorID,
		a.Department,
		a.Reason,
		a.ScheduledAt,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err, "create appointment")
}

func (r *appointmentRepository) GetByID(ctx context.Context, id model.AppointmentID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.GetContext(ctx, &a, `SELECT `+appointmentColumns+` FROM appointments WHERE appointment_id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get appointment")
	}
	return &a, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.AppointmentView, error) {
	query := `
		SELECT a.appointment_id, a.patient_id, a.doctor_id, a.department, a.reason, a.scheduled_at,
			   a.status, a.created_at, a.updated_at,
			   d.name AS doctor_name, d.specialization AS doctor_specialization
		FROM appointments a
		LEFT JOIN doctors d ON a.doctor_id = d.doctor_id
		WHERE a.patient_id = $1
		ORDER BY a.created_at DESC
	`
	var out []*model.AppointmentView
	if err := r.db.SelectContext(ctx, &out, query, patientID); err != nil {
		return nil, mapError(err, "list patient appointments")
	}
	return nonNil(out), nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.AppointmentView, error) {
	query := `
		SELECT a.appointment_id, a.patient_id, a.doctor_id, a.department, a.reason, a.scheduled_at,
			   a.status, a.created_at, a.updated_at,
			   p.name AS patient_name, p.email AS patient_email
		FROM appointments a
		LEFT JOIN patients p ON a.patient_id = p.patient_id
		WHERE a.doctor_id = $1
		ORDER BY a.created_at DESC
	`
	var out []*model.AppointmentView
	if err := r.db.SelectContext(ctx, &out, query, doctorID); err != nil {
		return nil, mapError(err, "list doctor appointments")
	}
	return nonNil(out), nil
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]*model.AppointmentView, error) {
	query := `
		SELECT a.appointment_id, a.patient_id, a.doctor_id, a.department, a.reason, a.scheduled_at,
			   a.status, a.created_at, a.updated_at,
			   d.name AS doctor_name, d.specialization AS doctor_specialization,
			   p.name AS patient_name, p.email AS patient_email
		FROM appointments a
		LEFT JOIN doctors d ON a.doctor_id = d.doctor_id
		LEFT JOIN patients p ON a.patient_id = p.patient_id
		ORDER BY a.created_at DESC, a.appointment_id DESC
	`
	var out []*model.AppointmentView
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, mapError(err, "list appointments")
	}
	return nonNil(out), nil
}

func (r *appointmentRepository) TransitionStatus(ctx context.Context, id model.AppointmentID, from, to model.AppointmentStatus) (*model.Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE appointment_id = $2 AND status = $3
		RETURNING ` + appointmentColumns
	var a model.Appointment
	if err := r.db.GetContext(ctx, &a, query, to, id, from); err != nil {
		return nil, mapTransitionError(err, "transition appointment")
	}
	return &a, nil
}
