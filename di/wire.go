//go:build wireinject
// +build wireinject

package di

import (
	"pms/config"
	"pms/infras/jwt"
	"pms/infras/otel"
	"pms/infras/postgres"
	"pms/infras/redis"
	"pms/infras/s3"
	"pms/permissions"
	"pms/shared/cache"
	"pms/shared/event"
	"pms/transport/http"
	"pms/transport/http/middleware"
	"pms/transport/http/router"

	auditLogRepository "pms/internal/domains/auditlog/repository"
	bookingRepository "pms/internal/domains/booking/repository"
	nightAuditRepository "pms/internal/domains/nightaudit/repository"
	nightAuditService "pms/internal/domains/nightaudit/service"
	occupancyService "pms/internal/domains/occupancy/service"
	roomRepository "pms/internal/domains/room/repository"

	bookingHandler "pms/internal/handlers/booking"
	nightAuditHandler "pms/internal/handlers/nightaudit"
	occupancyHandler "pms/internal/handlers/occupancy"

	"github.com/google/wire"
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
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.New,
)

var occupancyDomain = wire.NewSet(
	roomRepository.New,
	bookingRepository.New,
	occupancyService.New,
)

var nightAuditDomain = wire.NewSet(
	nightAuditRepository.New,
	auditLogRepository.New,
	nightAuditService.New,
)

var domains = wire.NewSet(
	occupancyDomain,
	nightAuditDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	occupancyHandler.New,
	nightAuditHandler.New,
	bookingHandler.New,
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
