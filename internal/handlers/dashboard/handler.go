package dashboard

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/internal/domains/dashboard/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/dashboard", handler.GetStats)
}

// GetStats returns the dashboard aggregates.
// @Summary Dashboard statistics
// @Description Room and booking counts plus revenue from confirmed and completed bookings.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Statistics"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboardStats")
	defer scope.End()

	var (
		stats dto.StatsResponse
		err   error
	)

	if stats, err = handler.service.ComputeStats(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute dashboard stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}
