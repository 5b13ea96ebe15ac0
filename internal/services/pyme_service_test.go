package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

func TestPymeCreateOnePerUser(t *testing.T) {
	ctx := context.Background()
	repos := newFakeRepos()
	alice := seedUser(repos, "alice", "alice@x.com")
	svc := NewPymeService(repos, logger.Discard())

	p, err := svc.Create(ctx, alice, *pymeData("30-12345678-9"))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, p.OwnerID)

	_, err = svc.Create(ctx, alice, *pymeData("30-87654321-0"))
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "user already has a pyme", apperrors.Message(err))

	mine, err := svc.GetMine(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, p.ID, mine.ID)
}

func TestPymeAccessIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	repos := newFakeRepos()
	alice := seedUser(repos, "alice", "alice@x.com")
	bob := seedUser(repos, "bob", "bob@x.com")
	svc := NewPymeService(repos, logger.Discard())

	p, err := svc.Create(ctx, alice, *pymeData("30-12345678-9"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	city := "Rosario"
	_, err = svc.Update(ctx, bob, p.ID, models.UpdatePymeRequest{City: &city})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, "CABA", repos.pymes[p.ID].City)

	updated, err := svc.Update(ctx, alice, p.ID, models.UpdatePymeRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Rosario", updated.City)

	_, err = svc.Update(ctx, alice, p.ID, models.UpdatePymeRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.GetMine(ctx, bob)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthorizePyme(t *testing.T) {
	owner := &models.User{ID: "u1"}
	assert.NoError(t, AuthorizePyme(owner, &models.Pyme{OwnerID: "u1"}))
	assert.ErrorIs(t, AuthorizePyme(owner, &models.Pyme{OwnerID: "u2"}), apperrors.ErrForbidden)
	assert.ErrorIs(t, AuthorizePyme(nil, &models.Pyme{OwnerID: "u1"}), apperrors.ErrForbidden)
}
