package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yar64/diplom-equipment-rental-sub001/infras/otel"
	bookingModel "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
	bookingService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/service"
	categoryService "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/category/service"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/constant"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
	"github.com/yar64/diplom-equipment-rental-sub001/transport/http/response"
)

type Handler struct {
	bookingService  bookingService.Booking
	categoryService categoryService.Category
	otel            otel.Otel
}

func New(bookingService bookingService.Booking, categoryService categoryService.Category, otel otel.Otel) Handler {
	return Handler{
		bookingService:  bookingService,
		categoryService: categoryService,
		otel:            otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Get("/distribution", handler.GetDistribution)
	})
}

// GetStats returns the booking counters shown on the dashboard.
// @Summary Get dashboard statistics
// @Description Retrieve booking totals, rentals starting today, overdue and ending soon counts, and the revenue total over in progress and completed bookings.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[lifecycle.Stats] "Dashboard statistics"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	// One clock reading per request keeps every booking in the
	// response classified against the same instant.
	now := timezone.Now()

	revenueStatuses := append(bookingModel.InProgressStatuses(), bookingModel.StatusCompleted)

	stats, err := handler.bookingService.Stats(ctx, now, revenueStatuses)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetDistribution returns the share of equipment per category.
// @Summary Get category distribution
// @Description Retrieve the count and percentage of equipment items per category.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.DistributionResponse] "Category distribution"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/distribution [get]
// @Security BearerAuth
func (handler *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistribution")
	defer scope.End()

	distribution, err := handler.categoryService.Distribution(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get category distribution")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Category distribution retrieved successfully")

	response.WithJSON(w, http.StatusOK, distribution)
}
