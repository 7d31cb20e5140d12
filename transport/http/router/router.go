package router

import (
	"pms/internal/handlers/booking"
	"pms/internal/handlers/nightaudit"
	"pms/internal/handlers/occupancy"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Occupancy  occupancy.Handler
	NightAudit nightaudit.Handler
	Booking    booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Occupancy.Router(routerGroup)
		r.DomainHandlers.NightAudit.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
