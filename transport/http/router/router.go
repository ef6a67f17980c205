package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/contact"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

const apiPrefix = "/v1"

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Room    room.Handler
	Booking booking.Handler
	Contact contact.Handler
}

type routes interface {
	Router(r chi.Router)
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts every domain under /v1. Registration order only matters for the swagger listing.
func (r *Router) SetupRoutes(mux chi.Router) {
	domains := []routes{
		&r.DomainHandlers.Auth,
		&r.DomainHandlers.User,
		&r.DomainHandlers.Room,
		&r.DomainHandlers.Booking,
		&r.DomainHandlers.Contact,
	}

	mux.Route(apiPrefix, func(v1 chi.Router) {
		for _, domain := range domains {
			domain.Router(v1)
		}
	})
}
