package router

import (
	"net/http"
	"strings"

	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/customer"
	"hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "/v1"

type DomainHandlers struct {
	Auth      auth.Handler
	Room      room.Handler
	Booking   booking.Handler
	Customer  customer.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

// SetupRoutes mounts every domain under the versioned prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(apiVersion, func(v1 chi.Router) {
		r.DomainHandlers.Auth.Router(v1)
		r.DomainHandlers.Room.Router(v1)
		r.DomainHandlers.Booking.Router(v1)
		r.DomainHandlers.Customer.Router(v1)
		r.DomainHandlers.Dashboard.Router(v1)
	})
}

// Endpoints lists "METHOD /pattern" for every mounted route, index routes without the trailing slash.
func (r *Router) Endpoints() ([]string, error) {
	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	var endpoints []string

	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}

		endpoints = append(endpoints, method+" "+route)

		return nil
	})

	return endpoints, err //nolint:wrapcheck
}
