package router

import (
	"galpao/internal/handlers/admin"
	"galpao/internal/handlers/auth"
	"galpao/internal/handlers/checkin"
	"galpao/internal/handlers/home"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Home    home.Handler
	Auth    auth.Handler
	Admin   admin.Handler
	Checkin checkin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain on the root. Paths are kept flat so they match permissions.json.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Home.Router(router)
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Admin.Router(router)
	r.DomainHandlers.Checkin.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
