package room

import (
	"net/http"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryType      = "type"
	queryAvailable = "available"
	queryFeatured  = "featured"
	queryCheckIn   = "check_in"
	queryCheckOut  = "check_out"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Post("/{id}/images", handler.UploadImage)
		routerGroup.Get("/{id}/quote", handler.Quote)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse] "Created room"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, room)
}

// GetRooms retrieves all rooms matching the query filters.
// @Summary Get all rooms
// @Description Retrieve all rooms, newest first, with optional filtering.
// @Tags Room
// @Produce json
// @Param type query string false "Filter by room type"
// @Param min_price query number false "Minimum nightly price"
// @Param max_price query number false "Maximum nightly price"
// @Param available query boolean false "Filter by availability"
// @Param featured query boolean false "Filter by featured flag"
// @Success 200 {object} response.Data[[]dto.RoomResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	query := r.URL.Query()

	filter := dto.RoomFilter{
		Type:      query.Get(queryType),
		MinPrice:  shared.ConvertStringToFloat(query.Get(dto.ArgMinPrice)),
		MaxPrice:  shared.ConvertStringToFloat(query.Get(dto.ArgMaxPrice)),
		Available: shared.ConvertStringToBool(query.Get(queryAvailable)),
		Featured:  shared.ConvertStringToBool(query.Get(queryFeatured)),
	}

	rooms, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom applies a partial update to a room.
// @Summary Update a room by ID
// @Description Only the fields present in the body are changed.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// UploadImage stores an image and appends its URL to the room.
// @Summary Upload a room image
// @Tags Room
// @Description Accepts a multipart file field "image" or a JSON body {"image": "data:image/png;base64,..."}.
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room with the new image"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadRoomImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory+constant.RequestMaxMemory/10)

	req, err := imageRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded image")

		response.WithError(w, err)

		return
	}

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	room, err := handler.service.UploadImage(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to upload room image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room image uploaded successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// Quote prices a stay in a room.
// @Summary Quote a stay
// @Description Compute nights and total price for the given dates.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (2006-01-02)"
// @Param check_out query string true "Check-out date (2006-01-02)"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/quote [get]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	query := r.URL.Query()

	quote, err := handler.service.Quote(ctx, id, query.Get(queryCheckIn), query.Get(queryCheckOut))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to quote room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

func imageRequest(r *http.Request) (dto.UploadImageRequest, error) {
	if strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeJSON) {
		body := dto.UploadImageDataRequest{}

		if err := validator.Validate(r.Body, &body); err != nil {
			return dto.UploadImageRequest{}, err
		}

		return body.ToUploadRequest()
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return dto.UploadImageRequest{}, failure.BadRequestFromString("image must be a multipart upload of at most 10 MB")
	}

	req := dto.UploadImageRequest{}

	file, fileHeader, err := r.FormFile(constant.FormImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file
	}

	return req, nil
}
