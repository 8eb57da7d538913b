//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"frontdesk/config"
	"frontdesk/infras/hotelapi"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/infras/redis"
	"frontdesk/shared/cache"
	"frontdesk/transport/http"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/router"

	availabilityService "frontdesk/internal/domains/availability/service"
	"frontdesk/internal/domains/booking/draft"
	bookingRepository "frontdesk/internal/domains/booking/repository"
	bookingService "frontdesk/internal/domains/booking/service"
	customerRepository "frontdesk/internal/domains/customer/repository"
	customerService "frontdesk/internal/domains/customer/service"
	invoiceRepository "frontdesk/internal/domains/invoice/repository"
	invoiceService "frontdesk/internal/domains/invoice/service"
	paymentRepository "frontdesk/internal/domains/payment/repository"
	paymentService "frontdesk/internal/domains/payment/service"
	roomRepository "frontdesk/internal/domains/room/repository"
	roomService "frontdesk/internal/domains/room/service"

	bookingHandler "frontdesk/internal/handlers/booking"
	customerHandler "frontdesk/internal/handlers/customer"
	draftHandler "frontdesk/internal/handlers/draft"
	invoiceHandler "frontdesk/internal/handlers/invoice"
	paymentHandler "frontdesk/internal/handlers/payment"
	roomHandler "frontdesk/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	hotelapi.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	draft.NewRegistry,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var billingDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceService.New,
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	customerDomain,
	billingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	draftHandler.New,
	customerHandler.New,
	invoiceHandler.New,
	paymentHandler.New,
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
