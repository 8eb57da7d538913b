package router

import (
	"github.com/go-chi/chi/v5"

	"frontdesk/internal/handlers/booking"
	"frontdesk/internal/handlers/customer"
	"frontdesk/internal/handlers/draft"
	"frontdesk/internal/handlers/invoice"
	"frontdesk/internal/handlers/payment"
	"frontdesk/internal/handlers/room"
)

type DomainHandlers struct {
	Room     room.Handler
	Booking  booking.Handler
	Draft    draft.Handler
	Customer customer.Handler
	Invoice  invoice.Handler
	Payment  payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Draft.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
