package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *models.CreditDocument) error
	ListByCredit(ctx context.Context, creditID string) ([]models.CreditDocument, error)
}

type documentRepository struct {
	db sqlx.ExtContext
}

func NewDocumentRepository(db sqlx.ExtContext) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *models.CreditDocument) error {
	const op = "repository.documents.Create"

	query := `
		INSERT INTO credit_documents (id, credit_id, file_name, file_url, hash, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.CreditID, d.FileName, d.FileURL, d.Hash, d.UploadedAt)
	return mapError(op, err, "document not found")
}

func (r *documentRepository) ListByCredit(ctx context.Context, creditID string) ([]models.CreditDocument, error) {
	const op = "repository.documents.ListByCredit"

	query := `
		SELECT id, credit_id, file_name, file_url, hash, uploaded_at
		FROM credit_documents
		WHERE credit_id = $1
		ORDER BY uploaded_at
	`

	docs := []models.CreditDocument{}
	if err := sqlx.SelectContext(ctx, r.db, &docs, query, creditID); err != nil {
		return nil, mapError(op, err, "document not found")
	}
	return docs, nil
}
