package db

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDBName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"postgres://u:p@localhost:5432/pymes?sslmode=disable", "pymes", false},
		{"postgresql://u@db/other", "other", false},
		{"host=localhost user=u dbname=kv sslmode=disable", "kv", false},
		{"postgres://u:p@localhost:5432", "", true},
		{"host=localhost user=u", "", true},
	}

	for _, tt := range tests {
		got, err := extractDBName(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestReplaceDBName(t *testing.T) {
	got, err := replaceDBName("postgres://u:p@localhost:5432/pymes?sslmode=disable", "postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/postgres?sslmode=disable", got)

	got, err = replaceDBName("host=localhost dbname=pymes sslmode=disable", "postgres")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost dbname=postgres sslmode=disable", got)
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestWithTxCommits(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO pymes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec("INSERT INTO pymes (id) VALUES ($1)", "p1")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTx(context.Background(), db, func(tx *sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(tx *sqlx.Tx) error { panic("kaboom") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}
