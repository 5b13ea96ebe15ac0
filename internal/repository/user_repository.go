package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, role, is_active, created_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const op = "repository.users.Create"

	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role, user.IsActive, user.CreatedAt)
	return mapError(op, err, "user not found")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const op = "repository.users.GetByID"

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, query, id); err != nil {
		return nil, mapError(op, err, "user not found")
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "repository.users.GetByEmail"

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, query, email); err != nil {
		return nil, mapError(op, err, "user not found")
	}
	return &u, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	const op = "repository.users.UpdatePasswordHash"

	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return mapError(op, err, "user not found")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err, "user not found")
	}
	if n == 0 {
		return mapError(op, sql.ErrNoRows, "user not found")
	}
	return nil
}
