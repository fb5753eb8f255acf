package router

import (
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/auth"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/booking"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/category"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/dashboard"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/equipment"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/payment"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/review"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/handlers/user"
	"github.com/yar64/diplom-equipment-rental-sub001/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Equipment equipment.Handler
	Category  category.Handler
	Booking   booking.Handler
	Review    review.Handler
	Payment   payment.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	authRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.authRole.Auth)
		routerGroup.Use(r.authRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Equipment.Router(routerGroup)
		r.DomainHandlers.Category.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		authRole:       authRole,
	}
}
