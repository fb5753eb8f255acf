//go:build wireinject
// +build wireinject

package di

import (
	"github.com/yar64/diplom-equipment-rental-sub001/config"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/jwt"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/kafka"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/otel"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/postgres"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/redis"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/s3"
	"github.com/yar64/diplom-equipment-rental-sub001/permissions"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/cache"
	"github.com/yar64/diplom-equipment-rental-sub001/transport/http"
	"github.com/yar64/diplom-equipment-rental-sub001/transport/http/middleware"
	"github.com/yar64/diplom-equipment-rental-sub001/transport/http/router"

	authService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/auth/service"
	bookingRepository "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/repository"
	bookingService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/service"
	categoryRepository "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/category/repository"
	categoryService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/category/service"
	equipmentRepository "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/repository"
	equipmentService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/service"
	paymentRepository "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/payment/repository"
	paymentService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/payment/service"
	reviewRepository "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/repository"
	reviewService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/service"
	userRepository "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/user/repository"
	userService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/user/service"

	authHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/auth"
	bookingHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/booking"
	categoryHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/category"
	dashboardHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/dashboard"
	equipmentHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/equipment"
	paymentHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/payment"
	reviewHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/review"
	userHandler "github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var categoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
)

var equipmentDomain = wire.NewSet(
	equipmentRepository.New,
	equipmentService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	categoryDomain,
	equipmentDomain,
	bookingDomain,
	reviewDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	equipmentHandler.New,
	categoryHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	paymentHandler.New,
	dashboardHandler.New,
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
