package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const doctorColumns = `doctor_id, name, email, phone, specialization, status, password, created_at`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, email, phone, specialization, status, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING doctor_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.Status,
		doctor.PasswordHash,
	).Scan(&doctor.ID, &doctor.CreatedAt)
	return mapError(err, "create doctor")
}

func (r *doctorRepository) GetByID(ctx context.Context, id model.DoctorID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, `SELECT `+doctorColumns+` FROM doctors WHERE doctor_id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, `SELECT `+doctorColumns+` FROM doctors WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return nil, mapError(err, "get doctor by email")
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error) {
	ds := r.dialect.From("doctors").
		Select(goqu.L(doctorColumns)).
		Order(goqu.C("doctor_id").Desc()).
		Prepared(true)

	where := goqu.Ex{}
	if filter.Status != "" {
		where["status"] = filter.Status
	}
	if filter.Specialization != "" {
		ds = ds.Where(goqu.Func("lower", goqu.C("specialization")).Eq(goqu.Func("lower", filter.Specialization)))
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build doctor list query: %w", err)
	}

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, mapError(err, "list doctors")
	}
	return nonNil(doctors), nil
}

func (r *doctorRepository) Update(ctx context.Context, id model.DoctorID, update model.DoctorUpdate) (*model.Doctor, error) {
	record := goqu.Record{}
	if update.Name != nil {
		record["name"] = *update.Name
	}
	if update.Phone != nil {
		record["phone"] = *update.Phone
	}
	if update.Specialization != nil {
		record["specialization"] = *update.Specialization
	}
	if len(record) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := r.dialect.Update("doctors").
		Set(record).
		Where(goqu.Ex{"doctor_id": id}).
		Returning(goqu.L(doctorColumns)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build doctor update query: %w", err)
	}

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, args...); err != nil {
		return nil, mapError(err, "update doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id model.DoctorID, status model.DoctorStatus) (*model.Doctor, error) {
	query := `UPDATE doctors SET status = $1 WHERE doctor_id = $2 RETURNING ` + doctorColumns
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, status, id); err != nil {
		return nil, mapError(err, "update doctor status")
	}
	return &doctor, nil
}
