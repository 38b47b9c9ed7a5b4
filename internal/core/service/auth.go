package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/port"
	"activityapp/internal/core/util"
)

type AuthService struct {
	repo port.UserRepository
	tracer
}

func NewAuthService(repo port.UserRepository, telemetry port.Telemetry) *AuthService {
	return &AuthService{
		repo:   repo,
		tracer: newTracer(telemetry, "auth"),
	}
}

func (as *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (_ *domain.User, err error) {
	ctx, done := as.trace(ctx, "Registration", 0)
	defer done(&err)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	cpf := util.NormalizeCPF(req.CPF)

	if _, err := as.repo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyUsed
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := as.repo.GetByCPF(ctx, cpf); err == nil {
		return nil, domain.ErrCPFAlreadyUsed
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	encrypted, err := util.HashPassword(req.Password)

	if err != nil {
		return nil, fmt.Errorf("error creating encrypted password: %w", err)
	}

	now := time.Now()

	user := domain.User{
		UUID:              uuid.New(),
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		CPF:               cpf,
		EncryptedPassword: encrypted,
		Level:             domain.LevelForXP(0),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := as.repo.Create(ctx, user)

	if errors.Is(err, domain.ErrDuplicateRecord) {
		// Lost a race with a concurrent registration.
		if _, cpfErr := as.repo.GetByCPF(ctx, cpf); cpfErr == nil {
			return nil, domain.ErrCPFAlreadyUsed
		}

		return nil, domain.ErrEmailAlreadyUsed
	}

	if err != nil {
		slog.Error("Auth#Registration", "error", err)
		return nil, err
	}

	as.event(ctx, "registered", "user", saved.UUID.String(), saved.ID, nil)

	return &saved, nil
}

// Authenticate checks the password before the account state, so a deactivated
// account is only revealed to its owner.
func (as *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (_ *domain.User, err error) {
	ctx, done := as.trace(ctx, "Authenticate", 0)
	defer done(&err)

	user, err := as.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))

	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Auth#Authenticate", "get_by_email", err)
		return nil, err
	}

	if err := util.CheckPassword(req.Password, user.EncryptedPassword); err != nil {
		return nil, domain.ErrWrongPassword
	}

	if !user.IsActive() {
		return nil, domain.ErrAccountDeactivated
	}

	return &user, nil
}
