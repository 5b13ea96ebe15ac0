package services

import (
	"context"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
)

// AuthorizePyme allows access only to the pyme's owner.
func AuthorizePyme(user *models.User, p *models.Pyme) error {
	if user == nil || p == nil || p.OwnerID != user.ID {
		return apperrors.Forbidden("you do not have access to this pyme")
	}
	return nil
}

// AuthorizeCredit applies the pyme rule through the credit's parent pyme.
func AuthorizeCredit(ctx context.Context, repos repository.Manager, user *models.User, c *models.Credit) error {
	p, err := repos.Pymes().GetByID(ctx, c.PymeID)
	if err != nil {
		return err
	}
	if err := AuthorizePyme(user, p); err != nil {
		return apperrors.Forbidden("you do not have access to this credit")
	}
	return nil
}

// authorizeCreditRead also lets reviewers read any credit.
func authorizeCreditRead(ctx context.Context, repos repository.Manager, user *models.User, c *models.Credit) error {
	if user != nil && user.Role.CanReview() {
		return nil
	}
	return AuthorizeCredit(ctx, repos, user, c)
}
