package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/resetcode"
)

const (
	resetRequestedMessage = "if the email is registered, a reset code has been sent"
	resetCodeValidMessage = "reset code is valid"
	passwordResetMessage  = "password has been reset"

	mailTimeout = 30 * time.Second
)

type PasswordResetService struct {
	repos      repository.Manager
	codes      *resetcode.Manager
	mailer     EmailSender
	log        *slog.Logger
	returnCode bool
	// dispatch runs mail delivery off the request path.
	dispatch func(func())
}

func NewPasswordResetService(repos repository.Manager, codes *resetcode.Manager, mailer EmailSender, log *slog.Logger, returnCode bool) *PasswordResetService {
	return &PasswordResetService{
		repos:      repos,
		codes:      codes,
		mailer:     mailer,
		log:        log,
		returnCode: returnCode,
		dispatch:   func(f func()) { go f() },
	}
}

// RequestReset answers the same way whether or not the account exists. Known
// accounts get a stored code and a mail. Unknown ones get a decoy code that
// goes through the same store write.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (*models.PasswordResetResponse, error) {
	var code string
	u, err := s.repos.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		code, err = s.codes.GenerateCode(ctx, u.Email)
		if err != nil {
			return nil, err
		}
		s.sendCode(ctx, u.Email, code)
	case errors.Is(err, apperrors.ErrNotFound):
		code, err = s.codes.GenerateDecoy(ctx)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	resp := &models.PasswordResetResponse{Message: resetRequestedMessage}
	if s.returnCode {
		resp.ResetCode = code
		resp.ExpiresInSeconds = int64(s.codes.TTL() / time.Second)
	}
	return resp, nil
}

func (s *PasswordResetService) sendCode(ctx context.Context, to, code string) {
	const op = "services.PasswordResetService.sendCode"

	ctx = context.WithoutCancel(ctx)
	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, int(s.codes.TTL().Minutes()))

	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(ctx, mailTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, to, "Password reset code", body); err != nil {
			s.log.Error("reset mail not sent", slog.String("op", op), logger.Err(err))
		}
	})
}

// checkCode resolves the account and validates code for it.
func (s *PasswordResetService) checkCode(ctx context.Context, email, code string) (*models.User, error) {
	u, err := s.repos.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	ok, err := s.codes.VerifyCode(ctx, u.Email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Validation(apperrors.InvalidResetCode)
	}
	return u, nil
}

// VerifyCode checks the code without consuming it. The code stays usable
// until it expires or a password reset clears it.
func (s *PasswordResetService) VerifyCode(ctx context.Context, req models.VerifyResetCodeRequest) (*models.PasswordResetResponse, error) {
	if _, err := s.checkCode(ctx, req.Email, req.ResetCode); err != nil {
		return nil, err
	}
	return &models.PasswordResetResponse{Message: resetCodeValidMessage}, nil
}

func (s *PasswordResetService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.PasswordResetResponse, error) {
	const op = "services.PasswordResetService.ResetPassword"

	u, err := s.checkCode(ctx, req.Email, req.ResetCode)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}
	if err := s.repos.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return nil, err
	}
	if err := s.codes.ClearCode(ctx, u.Email); err != nil {
		return nil, err
	}

	s.log.Info("password reset", slog.String("op", op), slog.String("user_id", u.ID))
	return &models.PasswordResetResponse{Message: passwordResetMessage}, nil
}
