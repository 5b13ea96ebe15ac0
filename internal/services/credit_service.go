package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/storage"
)

type CreditService struct {
	repos repository.Manager
	store storage.ObjectStore
	log   *slog.Logger
	now   func() time.Time
}

// NewCreditService builds the service. A nil store disables document uploads.
func NewCreditService(repos repository.Manager, store storage.ObjectStore, log *slog.Logger) *CreditService {
	return &CreditService{repos: repos, store: store, log: log, now: time.Now}
}

// Create submits a credit for the caller's pyme. A caller without a pyme must
// send its data and gets one created in the same transaction. A caller with a
// pyme may only target that pyme.
func (s *CreditService) Create(ctx context.Context, user *models.User, req models.CreateCreditRequest) (*models.CreditResponse, error) {
	const op = "services.CreditService.Create"

	resp := &models.CreditResponse{}
	err := s.repos.WithinTx(ctx, func(ctx context.Context, tx repository.Manager) error {
		now := s.now().UTC()

		pyme, err := tx.Pymes().GetByOwnerForUpdate(ctx, user.ID)
		switch {
		case err == nil:
			if req.PymeID != "" && req.PymeID != pyme.ID {
				return apperrors.Forbidden("credit must target your own pyme")
			}
		case errors.Is(err, apperrors.ErrNotFound):
			if req.PymeID != "" {
				return apperrors.Forbidden("credit must target your own pyme")
			}
			if req.Pyme == nil {
				return apperrors.Validation("pyme data is required to request a first credit")
			}
			pyme = req.Pyme.ToPyme(uuid.NewString(), user.ID, now)
			if err := tx.Pymes().Create(ctx, pyme); err != nil {
				return err
			}
			resp.PymeCreated = true
		default:
			return err
		}

		credit := &models.Credit{
			ID:                uuid.NewString(),
			PymeID:            pyme.ID,
			Amount:            req.Amount,
			Employees:         req.Employees,
			AnnualSales:       req.AnnualSales,
			FiscalYearClosing: req.FiscalYearClosing,
			TotalAssets:       req.TotalAssets,
			Status:            models.CreditPending,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Credits().Create(ctx, credit); err != nil {
			return err
		}
		resp.Credit = credit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("credit created", slog.String("op", op),
		slog.String("credit_id", resp.Credit.ID),
		slog.String("pyme_id", resp.Credit.PymeID),
		slog.Bool("pyme_created", resp.PymeCreated),
	)
	return resp, nil
}

func (s *CreditService) Get(ctx context.Context, user *models.User, id string) (*models.Credit, error) {
	c, err := s.repos.Credits().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeCreditRead(ctx, s.repos, user, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListMine lists the credits of the caller's pyme, empty when there is none.
func (s *CreditService) ListMine(ctx context.Context, user *models.User) ([]models.Credit, error) {
	p, err := s.repos.Pymes().GetByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []models.Credit{}, nil
		}
		return nil, err
	}
	return s.repos.Credits().ListByPyme(ctx, p.ID)
}

// Review moves a credit along its workflow and records the decision.
func (s *CreditService) Review(ctx context.Context, reviewer *models.User, creditID string, req models.CreateReviewRequest) (*models.CreditReview, error) {
	const op = "services.CreditService.Review"

	if !reviewer.Role.CanReview() {
		return nil, apperrors.Forbidden("only reviewers can review credits")
	}
	decision, err := models.ParseCreditStatus(req.Decision)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var review *models.CreditReview
	err = s.repos.WithinTx(ctx, func(ctx context.Context, tx repository.Manager) error {
		c, err := tx.Credits().GetByIDForUpdate(ctx, creditID)
		if err != nil {
			return err
		}
		if !c.Status.CanTransitionTo(decision) {
			return apperrors.Validation(fmt.Sprintf("credit cannot move from %s to %s", c.Status, decision))
		}

		now := s.now().UTC()
		if err := tx.Credits().UpdateStatus(ctx, c.ID, decision, now); err != nil {
			return err
		}
		review = &models.CreditReview{
			ID:         uuid.NewString(),
			CreditID:   c.ID,
			ReviewerID: reviewer.ID,
			Decision:   decision,
			Comments:   req.Comments,
			ReviewedAt: now,
		}
		return tx.Reviews().Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("credit reviewed", slog.String("op", op),
		slog.String("credit_id", creditID),
		slog.String("decision", string(decision)),
		slog.String("reviewer_id", reviewer.ID),
	)
	return review, nil
}

func (s *CreditService) ListReviews(ctx context.Context, user *models.User, creditID string) ([]models.CreditReview, error) {
	if _, err := s.Get(ctx, user, creditID); err != nil {
		return nil, err
	}
	return s.repos.Reviews().ListByCredit(ctx, creditID)
}

// Document is an uploaded file on its way to object storage.
type Document struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachDocument uploads a file for a credit the caller owns and records its
// sha256 digest. Ownership and status are checked again inside the insert
// transaction, with the credit row locked.
func (s *CreditService) AttachDocument(ctx context.Context, user *models.User, creditID string, doc Document) (*models.CreditDocument, error) {
	const op = "services.CreditService.AttachDocument"

	if s.store == nil {
		return nil, storage.ErrDisabled
	}

	c, err := s.repos.Credits().GetByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if err := checkAttachable(ctx, s.repos, user, c); err != nil {
		return nil, err
	}

	d := &models.CreditDocument{
		ID:       uuid.NewString(),
		CreditID: c.ID,
		FileName: doc.FileName,
	}

	h := sha256.New()
	url, err := s.store.Put(ctx, storage.ObjectKey(c.ID, d.ID, doc.FileName), io.TeeReader(doc.Body, h), doc.Size, doc.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d.FileURL = url
	d.Hash = hex.EncodeToString(h.Sum(nil))

	err = s.repos.WithinTx(ctx, func(ctx context.Context, tx repository.Manager) error {
		locked, err := tx.Credits().GetByIDForUpdate(ctx, creditID)
		if err != nil {
			return err
		}
		if err := checkAttachable(ctx, tx, user, locked); err != nil {
			return err
		}
		d.UploadedAt = s.now().UTC()
		return tx.Documents().Create(ctx, d)
	})
	if err != nil {
		s.log.Warn("uploaded document not recorded", slog.String("op", op),
			slog.String("credit_id", c.ID),
			slog.String("file_url", url),
			logger.Err(err),
		)
		return nil, err
	}

	s.log.Info("document attached", slog.String("op", op), slog.String("credit_id", c.ID), slog.String("document_id", d.ID))
	return d, nil
}

func checkAttachable(ctx context.Context, repos repository.Manager, user *models.User, c *models.Credit) error {
	if err := AuthorizeCredit(ctx, repos, user, c); err != nil {
		return err
	}
	if c.Status.IsTerminal() {
		return apperrors.Validation("credit is already " + string(c.Status))
	}
	return nil
}

func (s *CreditService) ListDocuments(ctx context.Context, user *models.User, creditID string) ([]models.CreditDocument, error) {
	if _, err := s.Get(ctx, user, creditID); err != nil {
		return nil, err
	}
	return s.repos.Documents().ListByCredit(ctx, creditID)
}
