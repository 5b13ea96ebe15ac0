package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/db"
)

// Manager hands out repositories that all run against the same connection:
// the pool, or one open transaction inside WithinTx.
type Manager interface {
	Users() UserRepository
	Pymes() PymeRepository
	Credits() CreditRepository
	Documents() DocumentRepository
	Reviews() ReviewRepository

	// WithinTx runs fn with a Manager bound to a single transaction. Nested
	// calls reuse the outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Manager) error) error
}

type repositoryManager struct {
	db *sqlx.DB
	q  sqlx.ExtContext
	tx bool
}

func NewManager(conn *sqlx.DB) Manager {
	return &repositoryManager{db: conn, q: conn}
}

func (m *repositoryManager) Users() UserRepository         { return NewUserRepository(m.q) }
func (m *repositoryManager) Pymes() PymeRepository         { return NewPymeRepository(m.q) }
func (m *repositoryManager) Credits() CreditRepository     { return NewCreditRepository(m.q) }
func (m *repositoryManager) Documents() DocumentRepository { return NewDocumentRepository(m.q) }
func (m *repositoryManager) Reviews() ReviewRepository     { return NewReviewRepository(m.q) }

func (m *repositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Manager) error) error {
	if m.tx {
		return fn(ctx, m)
	}
	return db.WithTx(ctx, m.db, func(tx *sqlx.Tx) error {
		return fn(ctx, &repositoryManager{db: m.db, q: tx, tx: true})
	})
}
