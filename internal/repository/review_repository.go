package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *models.CreditReview) error
	ListByCredit(ctx context.Context, creditID string) ([]models.CreditReview, error)
}

type reviewRepository struct {
	db sqlx.ExtContext
}

func NewReviewRepository(db sqlx.ExtContext) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *models.CreditReview) error {
	const op = "repository.reviews.Create"

	query := `
		INSERT INTO credit_reviews (id, credit_id, reviewer_id, decision, comments, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.CreditID, rv.ReviewerID, rv.Decision, rv.Comments, rv.ReviewedAt)
	return mapError(op, err, "review not found")
}

func (r *reviewRepository) ListByCredit(ctx context.Context, creditID string) ([]models.CreditReview, error) {
	const op = "repository.reviews.ListByCredit"

	query := `
		SELECT id, credit_id, reviewer_id, decision, comments, reviewed_at
		FROM credit_reviews
		WHERE credit_id = $1
		ORDER BY reviewed_at
	`

	reviews := []models.CreditReview{}
	if err := sqlx.SelectContext(ctx, r.db, &reviews, query, creditID); err != nil {
		return nil, mapError(op, err, "review not found")
	}
	return reviews, nil
}
