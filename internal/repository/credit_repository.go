package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

type CreditRepository interface {
	Create(ctx context.Context, c *models.Credit) error
	GetByID(ctx context.Context, id string) (*models.Credit, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Credit, error)
	ListByPyme(ctx context.Context, pymeID string) ([]models.Credit, error)
	UpdateStatus(ctx context.Context, id string, status models.CreditStatus, updatedAt time.Time) error
}

type creditRepository struct {
	db sqlx.ExtContext
}

func NewCreditRepository(db sqlx.ExtContext) CreditRepository {
	return &creditRepository{db: db}
}

const creditColumns = `id, pyme_id, amount, employees, annual_sales, fiscal_year_closing, total_assets, status, created_at, updated_at`

func (r *creditRepository) Create(ctx context.Context, c *models.Credit) error {
	const op = "repository.credits.Create"

	query := `
		INSERT INTO credits (id, pyme_id, amount, employees, annual_sales, fiscal_year_closing, total_assets,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.PymeID, c.Amount, c.Employees, c.AnnualSales, c.FiscalYearClosing, c.TotalAssets,
		c.Status, c.CreatedAt, c.UpdatedAt)
	return mapError(op, err, "credit not found")
}

func (r *creditRepository) GetByID(ctx context.Context, id string) (*models.Credit, error) {
	const op = "repository.credits.GetByID"

	var c models.Credit
	err := sqlx.GetContext(ctx, r.db, &c, `SELECT `+creditColumns+` FROM credits WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(op, err, "credit not found")
	}
	return &c, nil
}

func (r *creditRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Credit, error) {
	const op = "repository.credits.GetByIDForUpdate"

	var c models.Credit
	err := sqlx.GetContext(ctx, r.db, &c, `SELECT `+creditColumns+` FROM credits WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, mapError(op, err, "credit not found")
	}
	return &c, nil
}

func (r *creditRepository) ListByPyme(ctx context.Context, pymeID string) ([]models.Credit, error) {
	const op = "repository.credits.ListByPyme"

	query := `SELECT ` + creditColumns + `
		FROM credits
		WHERE pyme_id = $1
		ORDER BY created_at DESC
	`

	credits := []models.Credit{}
	if err := sqlx.SelectContext(ctx, r.db, &credits, query, pymeID); err != nil {
		return nil, mapError(op, err, "credit not found")
	}
	return credits, nil
}

func (r *creditRepository) UpdateStatus(ctx context.Context, id string, status models.CreditStatus, updatedAt time.Time) error {
	const op = "repository.credits.UpdateStatus"

	res, err := r.db.ExecContext(ctx, `UPDATE credits SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return mapError(op, err, "credit not found")
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		if err == nil {
			err = sql.ErrNoRows
		}
		return mapError(op, err, "credit not found")
	}
	return nil
}
