//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/storage"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	authService "hotel/internal/domains/auth/service"
	"hotel/internal/domains/booking/notification"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	contactRepository "hotel/internal/domains/contact/repository"
	contactService "hotel/internal/domains/contact/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	contactHandler "hotel/internal/handlers/contact"
	roomHandler "hotel/internal/handlers/room"
	userHandler "hotel/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	providePermissions,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	storage.New,
	mailer.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewDetail,
	provideReceiptRenderer,
	notification.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	roomDomain,
	bookingDomain,
	contactDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	contactHandler.New,
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
