package booking

import (
	"net/http"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCustomerID = "customer_id"
	queryRoomID     = "room_id"
	queryStatus     = "status"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/reserve", handler.Reserve)
		routerGroup.Get("/user/{email}", handler.GetBookingsByEmail)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateStatus)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a booking for an existing room and customer. Status defaults to pending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// Reserve books a room for a guest in one step.
// @Summary Reserve a room
// @Description Upsert the customer by email, price the stay and create a pending booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ReserveRequest true "Reserve Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/reserve [post]
func (handler *Handler) Reserve(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reserve")
	defer scope.End()

	req := dto.ReserveRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Reserve(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to reserve room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room reserved successfully")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings retrieves all bookings.
// @Summary Get all bookings
// @Description Retrieve bookings newest first with room and customer resolved.
// @Tags Booking
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Param room_id query string false "Filter by room"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	query := request.URL.Query()

	filter := dto.BookingFilter{
		CustomerID: query.Get(queryCustomerID),
		RoomID:     query.Get(queryRoomID),
		Status:     model.Status(query.Get(queryStatus)),
	}

	bookings, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(writer, http.StatusOK, booking)
}

// UpdateStatus moves a booking to a new status.
// @Summary Update booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated by user " + user)

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingsByEmail lists the bookings of the customer with the given email.
// @Summary Get bookings by customer email
// @Description Customers may only list their own bookings. An unknown email yields an empty list.
// @Tags Booking
// @Produce json
// @Param email path string true "Customer email"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "List of bookings"
// @Failure 403 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/user/{email} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsByEmail(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByEmail")
	defer scope.End()

	email := chi.URLParam(request, constant.RequestParamEmail)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	caller, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if role != constant.RoleAdmin && !strings.EqualFold(strings.TrimSpace(email), caller) {
		err := failure.ResourceRestrictedError
		scope.TraceError(err)

		response.WithErrorMessage(writer, err)

		return
	}

	bookings, err := handler.service.GetByCustomerEmail(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings by email")

		response.WithErrorMessage(writer, err)

		return
	}

	scope.AddEvent("Customer bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}
