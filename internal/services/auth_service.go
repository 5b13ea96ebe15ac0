package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/token"
)

const invalidCredentials = "invalid email or password"

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

func hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

type AuthService struct {
	repos     repository.Manager
	issuer    *token.Issuer
	log       *slog.Logger
	now       func() time.Time
	dummyHash []byte
}

func NewAuthService(repos repository.Manager, issuer *token.Issuer, log *slog.Logger) (*AuthService, error) {
	// compared against when the email is unknown so both paths pay for bcrypt
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password-0"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("services.NewAuthService: %w", err)
	}
	return &AuthService{
		repos:     repos,
		issuer:    issuer,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "services.AuthService.Register"

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repos.Users().Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", slog.String("op", op), slog.String("user_id", u.ID))
	return u, nil
}

// Authenticate returns the user owning email when password matches. Unknown
// emails, inactive accounts and wrong passwords are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "services.AuthService.Authenticate"

	u, err := s.repos.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, apperrors.Authentication(invalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("password mismatch", slog.String("op", op), slog.String("user_id", u.ID))
		return nil, apperrors.Authentication(invalidCredentials)
	}
	if !u.IsActive {
		return nil, apperrors.Authentication(invalidCredentials)
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	const op = "services.AuthService.Login"

	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	signed, err := s.issuer.Issue(token.Claims{Email: u.Email}, 0)
	if err != nil {
		s.log.Error("token issue failed", slog.String("op", op), logger.Err(err))
		return nil, err
	}

	return &models.TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}
