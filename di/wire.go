//go:build wireinject
// +build wireinject

package di

import (
	"medreg/config"
	"medreg/infras/jwt"
	"medreg/infras/kafka"
	"medreg/infras/otel"
	"medreg/infras/postgres"
	"medreg/infras/redis"
	"medreg/permissions"
	"medreg/shared/cache"
	"medreg/shared/clock"
	"medreg/transport/http"
	"medreg/transport/http/middleware"
	"medreg/transport/http/router"

	adminHandler "medreg/internal/handlers/admin"
	departmentHandler "medreg/internal/handlers/department"
	doctorHandler "medreg/internal/handlers/doctor"
	patientHandler "medreg/internal/handlers/patient"
	registrationHandler "medreg/internal/handlers/registration"
	scheduleHandler "medreg/internal/handlers/schedule"

	adminRepository "medreg/internal/domains/admin/repository"
	adminService "medreg/internal/domains/admin/service"
	departmentRepository "medreg/internal/domains/department/repository"
	departmentService "medreg/internal/domains/department/service"
	doctorRepository "medreg/internal/domains/doctor/repository"
	doctorService "medreg/internal/domains/doctor/service"
	patientRepository "medreg/internal/domains/patient/repository"
	patientService "medreg/internal/domains/patient/service"
	registrationRepository "medreg/internal/domains/registration/repository"
	registrationService "medreg/internal/domains/registration/service"
	scheduleRepository "medreg/internal/domains/schedule/repository"
	scheduleService "medreg/internal/domains/schedule/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.TxRunner), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.NewSystem,
	permissions.Get,
)

var departmentDomain = wire.NewSet(
	departmentRepository.New,
	departmentService.New,
)

var doctorDomain = wire.NewSet(
	doctorRepository.New,
	doctorService.New,
)

var patientDomain = wire.NewSet(
	patientRepository.New,
	patientService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var registrationDomain = wire.NewSet(
	registrationRepository.New,
	registrationService.New,
)

var domains = wire.NewSet(
	departmentDomain,
	doctorDomain,
	patientDomain,
	adminDomain,
	scheduleDomain,
	registrationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	adminHandler.New,
	departmentHandler.New,
	doctorHandler.New,
	patientHandler.New,
	registrationHandler.New,
	scheduleHandler.New,
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
