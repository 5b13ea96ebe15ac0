package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
)

type PymeService struct {
	repos repository.Manager
	log   *slog.Logger
	now   func() time.Time
}

func NewPymeService(repos repository.Manager, log *slog.Logger) *PymeService {
	return &PymeService{repos: repos, log: log, now: time.Now}
}

func (s *PymeService) Create(ctx context.Context, user *models.User, req models.CreatePymeRequest) (*models.Pyme, error) {
	const op = "services.PymeService.Create"

	var p *models.Pyme
	err := s.repos.WithinTx(ctx, func(ctx context.Context, tx repository.Manager) error {
		_, err := tx.Pymes().GetByOwnerForUpdate(ctx, user.ID)
		switch {
		case err == nil:
			return apperrors.Validation("user already has a pyme")
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		p = req.ToPyme(uuid.NewString(), user.ID, s.now().UTC())
		return tx.Pymes().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("pyme created", slog.String("op", op), slog.String("pyme_id", p.ID), slog.String("user_id", user.ID))
	return p, nil
}

func (s *PymeService) Get(ctx context.Context, user *models.User, id string) (*models.Pyme, error) {
	p, err := s.repos.Pymes().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizePyme(user, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PymeService) GetMine(ctx context.Context, user *models.User) (*models.Pyme, error) {
	return s.repos.Pymes().GetByOwner(ctx, user.ID)
}

// Update checks ownership and writes under the same row lock.
func (s *PymeService) Update(ctx context.Context, user *models.User, id string, req models.UpdatePymeRequest) (*models.Pyme, error) {
	if req.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	var p *models.Pyme
	err := s.repos.WithinTx(ctx, func(ctx context.Context, tx repository.Manager) error {
		var err error
		p, err = tx.Pymes().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := AuthorizePyme(user, p); err != nil {
			return err
		}
		req.Apply(p)
		return tx.Pymes().Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
