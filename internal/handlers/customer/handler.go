package customer

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/customer/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Post("/", handler.UpsertCustomer)
	})
}

// UpsertCustomer creates a customer or refreshes the one with the same email.
// @Summary Create or update a customer
// @Description Customers are keyed by email. An existing customer only gets name and phone updated.
// @Tags Customer
// @Accept json
// @Produce json
// @Param request body dto.UpsertCustomerRequest true "Upsert Customer Request"
// @Success 200 {object} response.Data[dto.CustomerResponse] "Customer"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers [post]
func (handler *Handler) UpsertCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertCustomer")
	defer scope.End()

	req := dto.UpsertCustomerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	customer, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert customer")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customer upserted successfully")

	response.WithJSON(w, http.StatusOK, customer)
}

// GetCustomers lists customers, optionally narrowed by a search term.
// @Summary Get all customers
// @Tags Customer
// @Produce json
// @Param search query string false "Match against name, email or phone"
// @Success 200 {object} response.Data[[]dto.CustomerResponse] "List of customers"
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
// @Security BearerAuth
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	customers, err := handler.service.GetAll(ctx, r.URL.Query().Get(constant.RequestParamSearch))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, customers)
}
