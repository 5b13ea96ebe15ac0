package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

type PymeRepository interface {
	Create(ctx context.Context, p *models.Pyme) error
	GetByID(ctx context.Context, id string) (*models.Pyme, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Pyme, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Pyme, error)
	GetByOwnerForUpdate(ctx context.Context, ownerID string) (*models.Pyme, error)
	Update(ctx context.Context, p *models.Pyme) error
}

type pymeRepository struct {
	db sqlx.ExtContext
}

func NewPymeRepository(db sqlx.ExtContext) PymeRepository {
	return &pymeRepository{db: db}
}

const pymeColumns = `id, user_id, name_company, cuit, legal_form, activity, corporate_email, phone_number,
		country, state, city, address, postal_code, created_at`

func (r *pymeRepository) Create(ctx context.Context, p *models.Pyme) error {
	const op = "repository.pymes.Create"

	query := `
		INSERT INTO pymes (id, user_id, name_company, cuit, legal_form, activity, corporate_email, phone_number,
			country, state, city, address, postal_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.NameCompany, p.CUIT, p.LegalForm, p.Activity, p.CorporateEmail, p.PhoneNumber,
		p.Country, p.State, p.City, p.Address, p.PostalCode, p.CreatedAt)
	return mapError(op, err, "pyme not found")
}

func (r *pymeRepository) get(ctx context.Context, op, where string, arg any) (*models.Pyme, error) {
	query := `SELECT ` + pymeColumns + ` FROM pymes WHERE ` + where

	var p models.Pyme
	if err := sqlx.GetContext(ctx, r.db, &p, query, arg); err != nil {
		return nil, mapError(op, err, "pyme not found")
	}
	return &p, nil
}

func (r *pymeRepository) GetByID(ctx context.Context, id string) (*models.Pyme, error) {
	return r.get(ctx, "repository.pymes.GetByID", "id = $1", id)
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *pymeRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Pyme, error) {
	return r.get(ctx, "repository.pymes.GetByIDForUpdate", "id = $1 FOR UPDATE", id)
}

func (r *pymeRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Pyme, error) {
	return r.get(ctx, "repository.pymes.GetByOwner", "user_id = $1", ownerID)
}

// GetByOwnerForUpdate locks the caller's pyme row, if any, until the
// surrounding transaction ends.
func (r *pymeRepository) GetByOwnerForUpdate(ctx context.Context, ownerID string) (*models.Pyme, error) {
	return r.get(ctx, "repository.pymes.GetByOwnerForUpdate", "user_id = $1 FOR UPDATE", ownerID)
}

func (r *pymeRepository) Update(ctx context.Context, p *models.Pyme) error {
	const op = "repository.pymes.Update"

	query := `
		UPDATE pymes
		SET name_company = $1,
			legal_form = $2,
			activity = $3,
			corporate_email = $4,
			phone_number = $5,
			country = $6,
			state = $7,
			city = $8,
			address = $9,
			postal_code = $10
		WHERE id = $11
	`

	res, err := r.db.ExecContext(ctx, query,
		p.NameCompany, p.LegalForm, p.Activity, p.CorporateEmail, p.PhoneNumber,
		p.Country, p.State, p.City, p.Address, p.PostalCode, p.ID)
	if err != nil {
		return mapError(op, err, "pyme not found")
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		if err == nil {
			err = sql.ErrNoRows
		}
		return mapError(op, err, "pyme not found")
	}
	return nil
}
