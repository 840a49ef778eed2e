package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"galpao/config"
	"galpao/infras/jwt"
	"galpao/infras/otel"
	adminDto "galpao/internal/domains/admin/model/dto"
	adminService "galpao/internal/domains/admin/service"
	"galpao/internal/domains/auth/model/dto"
	studentRepo "galpao/internal/domains/student/repository"
	"galpao/shared"
	"galpao/shared/cache"
	"galpao/shared/constant"
	"galpao/shared/failure"
	"galpao/shared/password"
	"galpao/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgStudentNotRegistered = "student not registered, contact the administration"
	msgWrongPassword        = "wrong password"
	msgInvalidRefreshToken  = "invalid refresh token"
	msgRevokedToken         = "token has been revoked"
	msgMissingSession       = "missing session token"

	revokedMarker = "1"
)

type Auth interface {
	StudentLogin(ctx context.Context, req dto.StudentLoginRequest) (dto.LoginResponse, error)
	AdminLogin(ctx context.Context, req adminDto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, session dto.Session) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type serviceImpl struct {
	studentRepo  studentRepo.Student
	adminService adminService.Admin
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	jwtService   jwt.JWT
}

func New(
	studentRepo studentRepo.Student,
	adminService adminService.Admin,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		studentRepo:  studentRepo,
		adminService: adminService,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		jwtService:   jwt,
	}
}

func (s *serviceImpl) StudentLogin(ctx context.Context, req dto.StudentLoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.StudentLogin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	student, err := s.studentRepo.Get(ctx, studentRepo.FilterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get student")

		return res, fmt.Errorf("failed to get student: %w", err)
	}

	if student.ID == constant.Empty {
		log.Warn().Str("student", req.Name).Msg("login attempt with unknown name")

		return res, failure.NotFound(msgStudentNotRegistered)
	}

	matches, err := password.Matches(req.Password, student.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to verify password")

		return res, fmt.Errorf("failed to verify password: %w", err)
	}

	if !matches {
		log.Warn().Str("student", req.Name).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgWrongPassword)
	}

	identity := jwt.Identity{UserID: student.ID, Name: student.Name, Role: constant.RoleStudent}

	return s.issue(identity)
}

func (s *serviceImpl) AdminLogin(ctx context.Context, req adminDto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.AdminLogin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.adminService.Login(ctx, req.Password); err != nil {
		return res, err
	}

	identity := jwt.Identity{UserID: constant.RoleAdmin, Name: constant.RoleAdmin, Role: constant.RoleAdmin}

	return s.issue(identity)
}

// RefreshToken rotates the pair. The presented refresh token is revoked so it can only be used once.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized(msgInvalidRefreshToken)
	}

	revoked, err := s.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized(msgRevokedToken)
	}

	if claims.Role == constant.RoleStudent {
		student, err := s.studentRepo.Get(ctx, studentRepo.FilterByName(claims.Name))
		if err != nil {
			log.Error().Err(err).Msg("failed to get student")

			return res, fmt.Errorf("failed to get student: %w", err)
		}

		if student.ID != claims.UserID {
			return res, failure.Unauthorized(msgInvalidRefreshToken)
		}
	}

	now := timezone.Now()
	if err = s.revoke(ctx, dto.Session{TokenID: claims.TokenID, ExpiresAt: now.Add(claims.RemainingLifetime(now))}); err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(jwt.Identity{UserID: claims.UserID, Name: claims.Name, Role: claims.Role})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Logout revokes the access token of the session until it would have expired anyway.
func (s *serviceImpl) Logout(ctx context.Context, session dto.Session) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if session.TokenID == constant.Empty {
		return failure.Unauthorized(msgMissingSession)
	}

	return s.revoke(ctx, session)
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedToken, tokenID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check token revocation")

		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return revoked, nil
}

func (s *serviceImpl) revoke(ctx context.Context, session dto.Session) error {
	ttl := session.TTLSeconds(timezone.Now())
	if ttl == 0 {
		return nil
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedToken, session.TokenID), revokedMarker, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *serviceImpl) issue(identity jwt.Identity) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(identity)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	log.Info().Str("name", identity.Name).Str("role", identity.Role).Msg("login succeeded")

	res.FromTokenPair(tokenPair, identity)

	return res, nil
}
