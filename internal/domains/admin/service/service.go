package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Admin=MockAdminService

import (
	"context"
	"fmt"
	"galpao/config"
	"galpao/infras/otel"
	"galpao/internal/domains/admin/model"
	"galpao/internal/domains/admin/model/dto"
	"galpao/internal/domains/admin/repository"
	"galpao/shared"
	"galpao/shared/constant"
	"galpao/shared/failure"
	"galpao/shared/password"
	"galpao/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgWrongPassword        = "wrong administrator password"
	msgWrongCurrentPassword = "current password is incorrect"
)

type Admin interface {
	Login(ctx context.Context, plain string) error
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	repo repository.Admin
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Admin, cfg *config.Config, otel otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Login checks the administrator password. On first run no hash is stored yet, so
// the configured default is accepted and persisted.
func (s *serviceImpl) Login(ctx context.Context, plain string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stored, err := s.repo.Get(ctx, repository.FilterByKey(model.KeyAdminPassword))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin password")

		return fmt.Errorf("failed to get admin password: %w", err)
	}

	if stored.ID != constant.Empty {
		return s.verify(plain, stored.Value)
	}

	if plain != s.cfg.App.AdminDefaultPassword {
		log.Warn().Msg("admin login attempt with wrong default password")

		return failure.Unauthorized(msgWrongPassword)
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash admin password")

		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err = s.repo.Insert(ctx, dto.NewPasswordConfig(hashed, constant.ContextSystem, timezone.Now())); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return nil
		}

		log.Error().Err(err).Msg("failed to seed admin password")

		return fmt.Errorf("failed to seed admin password: %w", err)
	}

	log.Info().Msg("admin password seeded from default")

	return nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username, _ := ctx.Value(constant.ContextKeyUserName).(string)
	if username == constant.Empty {
		username = constant.RoleAdmin
	}

	stored, err := s.repo.Get(ctx, repository.FilterByKey(model.KeyAdminPassword))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin password")

		return fmt.Errorf("failed to get admin password: %w", err)
	}

	switch {
	case stored.ID == constant.Empty && req.CurrentPassword != s.cfg.App.AdminDefaultPassword:
		return failure.BadRequestFromString(msgWrongCurrentPassword)
	case stored.ID != constant.Empty && password.Verify(req.CurrentPassword, stored.Value) != nil:
		return failure.BadRequestFromString(msgWrongCurrentPassword)
	}

	if err = password.Check(req.NewPassword); err != nil {
		return failure.BadRequest(err)
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash admin password")

		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if stored.ID == constant.Empty {
		err = s.repo.Insert(ctx, dto.NewPasswordConfig(hashed, username, timezone.Now()))
	} else {
		fields := shared.TransformFields(dto.UpdateValueRequest{Value: hashed}, username)
		err = s.repo.Update(ctx, fields, repository.FilterByKey(model.KeyAdminPassword))
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to store admin password")

		return fmt.Errorf("failed to store admin password: %w", err)
	}

	log.Info().Str("by", username).Msg("admin password changed")

	return nil
}

func (s *serviceImpl) verify(plain, hash string) error {
	matches, err := password.Matches(plain, hash)
	if err != nil {
		log.Error().Err(err).Msg("failed to verify admin password")

		return fmt.Errorf("failed to verify admin password: %w", err)
	}

	if !matches {
		log.Warn().Msg("admin login attempt with wrong password")

		return failure.Unauthorized(msgWrongPassword)
	}

	return nil
}
