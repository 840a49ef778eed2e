//go:build wireinject
// +build wireinject

package di

import (
	"galpao/config"
	"galpao/infras/jwt"
	"galpao/infras/otel"
	"galpao/infras/postgres"
	"galpao/infras/redis"
	"galpao/permissions"
	"galpao/shared/cache"
	"galpao/shared/timezone"
	"galpao/transport/http"
	"galpao/transport/http/middleware"
	"galpao/transport/http/router"

	"github.com/google/wire"

	adminRepository "galpao/internal/domains/admin/repository"
	adminService "galpao/internal/domains/admin/service"
	authService "galpao/internal/domains/auth/service"
	checkinRepository "galpao/internal/domains/checkin/repository"
	checkinService "galpao/internal/domains/checkin/service"
	studentRepository "galpao/internal/domains/student/repository"
	studentService "galpao/internal/domains/student/service"
	adminHandler "galpao/internal/handlers/admin"
	authHandler "galpao/internal/handlers/auth"
	checkinHandler "galpao/internal/handlers/checkin"
	homeHandler "galpao/internal/handlers/home"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var studentDomain = wire.NewSet(
	studentRepository.New,
	studentService.New,
)

var checkinDomain = wire.NewSet(
	checkinRepository.New,
	checkinService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	studentDomain,
	checkinDomain,
	adminDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	homeHandler.New,
	authHandler.New,
	adminHandler.New,
	checkinHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
