package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

type doctorProfileRepository struct {
	db *sqlx.DB
}

func NewDoctorProfileRepository(db *sqlx.DB) repository.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

func (r *doctorProfileRepository) Upsert(ctx context.Context, p *model.DoctorProfile) error {
	query := `
		INSERT INTO doctor_profiles (
			doctor_id, bio, sub_specialization, experience_years, qualifications, languages_spoken, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (doctor_id)
		DO UPDATE SET bio = $2, sub_specialization = $3, experience_years = $4,
			qualifications = $5, languages_spoken = $6, updated_at = NOW()
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.DoctorID,
		p.Bio,
		p.SubSpecialization,
		p.ExperienceYears,
		p.Qualifications,
		p.LanguagesSpoken,
	).Scan(&p.UpdatedAt)
	return mapError(err, "upsert doctor profile")
}

func (r *doctorProfileRepository) GetByDoctorID(ctx context.Context, id model.DoctorID) (*model.DoctorProfile, error) {
	query := `
		SELECT doctor_id, bio, sub_specialization, experience_years, qualifications, languages_spoken, updated_at
		FROM doctor_profiles
		WHERE doctor_id = $1
	`
	var p model.DoctorProfile
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, mapError(err, "get doctor profile")
	}
	return &p, nil
}
