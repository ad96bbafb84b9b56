package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

type pharmacyRepository struct {
	db *sqlx.DB
}

func NewPharmacyRepository(db *sqlx.DB) repository.PharmacyRepository {
	return &pharmacyRepository{db: db}
}

func (r *pharmacyRepository) Create(ctx context.Context, p *model.Pharmacy) error {
	query := `
		INSERT INTO pharmacies (
			pharmacy_name, license_number, owner_name, phone, email,
			address, opening_hours, closing_hours, username, password
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING pharmacy_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.PharmacyName,
		p.LicenseNumber,
		p.OwnerName,
		p.Phone,
		p.Email,
		p.Address,
		p.OpeningHours,
		p.ClosingHours,
		p.Username,
		p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt)
	return mapError(err, "create pharmacy")
}

func (r *pharmacyRepository) GetByUsername(ctx context.Context, username string) (*model.Pharmacy, error) {
	query := `
		SELECT pharmacy_id, pharmacy_name, license_number, owner_name, phone, email,
			   address, opening_hours, closing_hours, username, password, created_at
		FROM pharmacies
		WHERE username = $1
	`
	var p model.Pharmacy
	if err := r.db.GetContext(ctx, &p, query, username); err != nil {
		return nil, mapError(err, "get pharmacy")
	}
	return &p, nil
}
