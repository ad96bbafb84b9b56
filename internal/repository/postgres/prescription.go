package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const (
	prescriptionViewQuery = `
		SELECT pr.prescription_id, pr.appointment_id, pr.doctor_id, pr.patient_id, pr.notes, pr.created_at,
			   a.scheduled_at AS appointment_scheduled_at, a.status AS appointment_status,
			   d.name AS doctor_name, p.name AS patient_name
		FROM prescriptions pr
		LEFT JOIN appointments a ON pr.appointment_id = a.appointment_id
		LEFT JOIN doctors d ON pr.doctor_id = d.doctor_id
		LEFT JOIN patients p ON pr.patient_id = p.patient_id
	`
	medicineColumns = `medicine_id, prescription_id, name, dosage, frequency, duration, instructions, created_at`
)

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{NewBaseRepository(db)}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (appointment_id, doctor_id, patient_id, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING prescription_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.AppointmentID, p.DoctorID, p.PatientID, p.Notes).
		Scan(&p.ID, &p.CreatedAt)
	return mapError(err, "create prescription")
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id model.PrescriptionID) (*model.PrescriptionView, error) {
	var view model.PrescriptionView
	if err := r.db.GetContext(ctx, &view, prescriptionViewQuery+` WHERE pr.prescription_id = $1`, id); err != nil {
		return nil, mapError(err, "get prescription")
	}

	medicines, err := r.ListMedicines(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Medicines = medicines
	return &view, nil
}

func (r *prescriptionRepository) GetByAppointmentID(ctx context.Context, id model.AppointmentID) (*model.Prescription, error) {
	query := `
		SELECT prescription_id, appointment_id, doctor_id, patient_id, notes, created_at
		FROM prescriptions
		WHERE appointment_id = $1
	`
	var p model.Prescription
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, mapError(err, "get prescription by appointment")
	}
	return &p, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.PrescriptionView, error) {
	var out []*model.PrescriptionView
	query := prescriptionViewQuery + ` WHERE pr.patient_id = $1 ORDER BY pr.created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, patientID); err != nil {
		return nil, mapError(err, "list patient prescriptions")
	}
	return nonNil(out), nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.PrescriptionView, error) {
	var out []*model.PrescriptionView
	query := prescriptionViewQuery + ` WHERE pr.doctor_id = $1 ORDER BY pr.created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, doctorID); err != nil {
		return nil, mapError(err, "list doctor prescriptions")
	}
	return nonNil(out), nil
}

func (r *prescriptionRepository) AddMedicine(ctx context.Context, line *model.MedicineLine) error {
	query := `
		INSERT INTO prescription_medicines (prescription_id, name, dosage, frequency, duration, instructions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING medicine_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		line.PrescriptionID,
		line.Name,
		line.Dosage,
		line.Frequency,
		line.Duration,
		line.Instructions,
	).Scan(&line.ID, &line.CreatedAt)
	return mapError(err, "add medicine")
}

func (r *prescriptionRepository) ListMedicines(ctx context.Context, id model.PrescriptionID) ([]*model.MedicineLine, error) {
	var out []*model.MedicineLine
	query := `SELECT ` + medicineColumns + ` FROM prescription_medicines WHERE prescription_id = $1 ORDER BY medicine_id ASC`
	if err := r.db.SelectContext(ctx, &out, query, id); err != nil {
		return nil, mapError(err, "list medicines")
	}
	return nonNil(out), nil
}

func (r *prescriptionRepository) GetMedicine(ctx context.Context, id model.MedicineID) (*model.MedicineLine, error) {
	var line model.MedicineLine
	if err := r.db.GetContext(ctx, &line, `SELECT `+medicineColumns+` FROM prescription_medicines WHERE medicine_id = $1`, id); err != nil {
		return nil, mapError(err, "get medicine")
	}
	return &line, nil
}

// UpdateMedicine writes only the supplied fields. An empty update is reported as ErrNotFound.
func (r *prescriptionRepository) UpdateMedicine(ctx context.Context, id model.MedicineID, update model.MedicineUpdate) (*model.MedicineLine, error) {
	record := goqu.Record{}
	if update.Name != nil {
		record["name"] = *update.Name
	}
	if update.Dosage != nil {
		record["dosage"] = *update.Dosage
	}
	if update.Frequency != nil {
		record["frequency"] = *update.Frequency
	}
	if update.Duration != nil {
		record["duration"] = *update.Duration
	}
	if update.Instructions != nil {
		record["instructions"] = *update.Instructions
	}
	if len(record) == 0 {
		return nil, fmt.Errorf("update medicine: %w", repository.ErrNotFound)
	}

	query, args, err := r.dialect.Update("prescription_medicines").
		Set(record).
		Where(goqu.Ex{"medicine_id": id}).
		Returning(goqu.L(medicineColumns)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build medicine update query: %w", err)
	}

	var line model.MedicineLine
	if err := r.db.GetContext(ctx, &line, query, args...); err != nil {
		return nil, mapError(err, "update medicine")
	}
	return &line, nil
}
