package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	customerModel "hotel/internal/domains/customer/model"
	customerDto "hotel/internal/domains/customer/model/dto"
	customerRepo "hotel/internal/domains/customer/repository"
	customerService "hotel/internal/domains/customer/service"
	"hotel/internal/domains/pricing"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = constant.CacheKeyBookingPrefix + "get"
	cacheGetAllBooking = constant.CacheKeyBookingPrefix + "gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Reserve(ctx context.Context, req dto.ReserveRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, filter dto.BookingFilter) ([]dto.BookingResponse, error)
	GetByCustomerEmail(ctx context.Context, email string) ([]dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	customerSvc  customerService.Customer
	publisher    kafka.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	customerSvc customerService.Customer,
	publisher kafka.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		customerSvc:  customerSvc,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create persists a booking for an existing room and customer. Capacity and overlapping stays
// are not checked here. The booking stays persisted when resolving it afterwards fails.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	if err = s.ensureRoom(ctx, req.RoomID); err != nil {
		return res, err
	}

	if err = s.ensureCustomer(ctx, req.CustomerID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	booking := req.ToModel(checkIn, checkOut, user)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, constant.Empty)
	s.publish(ctx, dto.NewEvent(dto.EventBookingCreated, booking, constant.Empty))

	resolved, err := s.resolve(ctx, []model.Booking{booking})
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("booking created but could not be resolved")

		return res, err
	}

	return resolved[0], nil
}

// Reserve runs the guest flow: price the stay, upsert the customer by email, then create the booking.
// The customer write and the booking write are independent.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.ReserveRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReserveBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Available {
		return res, failure.BadRequestFromString("room is not available") // nolint:wrapcheck
	}

	if req.Guests > room.Capacity {
		return res, failure.BadRequestFromString(fmt.Sprintf("room accommodates at most %d guests", room.Capacity)) // nolint:wrapcheck
	}

	customer, err := s.customerSvc.Upsert(ctx, req.ToCustomerRequest())
	if err != nil {
		return res, err
	}

	totalPrice := pricing.ComputeTotalPrice(checkIn, checkOut, room.Price)

	return s.Create(ctx, dto.CreateBookingRequest{
		RoomID:          room.ID,
		CustomerID:      customer.ID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		TotalPrice:      &totalPrice,
		SpecialRequests: req.SpecialRequests,
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	lease := shared.LeaseCache(ctx, s.cache, cacheKey)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	resolved, err := s.resolve(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	res = resolved[0]

	shared.FillCache(ctx, s.cache, cacheKey, lease, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.BookingFilter) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if filter.Status != constant.Empty && !filter.Status.Valid() {
		return nil, failure.BadRequestFromString("status has an unsupported value") // nolint:wrapcheck
	}

	params := gDto.Newest()
	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	lease := shared.LeaseCache(ctx, s.cache, cacheKey)

	bookings, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res, err = s.resolve(ctx, bookings)
	if err != nil {
		return nil, err
	}

	shared.FillCache(ctx, s.cache, cacheKey, lease, res, s.cfg.Cache.TTL)

	return res, nil
}

// GetByCustomerEmail lists the bookings of the customer with that email, or nothing when the
// email is unknown.
func (s *serviceImpl) GetByCustomerEmail(ctx context.Context, email string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingsByCustomerEmail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	customer, err := s.customerSvc.GetByEmail(ctx, email)
	if failure.IsNotFound(err) {
		return []dto.BookingResponse{}, nil
	}

	if err != nil {
		return nil, err
	}

	return s.GetAll(ctx, dto.BookingFilter{CustomerID: customer.ID})
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	next, err := model.Transition(booking.Status, req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields := shared.TransformFields(dto.StatusPatch{Status: next}, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	previous := booking.Status
	booking.Status = next
	booking.ModifiedBy = user

	if modifiedAt, ok := fields[constant.FieldModifiedAt].(time.Time); ok {
		booking.ModifiedAt = modifiedAt
	}

	s.invalidate(ctx, id)
	s.publish(ctx, dto.NewEvent(dto.EventBookingStatusChanged, booking, previous))

	resolved, err := s.resolve(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	return resolved[0], nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) ensureRoom(ctx context.Context, id string) error {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName), roomModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensureCustomer(ctx context.Context, id string) error {
	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(id, customerModel.FieldID, customerModel.TableName), customerModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if customer.ID == constant.Empty {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return nil
}

// resolve embeds rooms and customers using one batched lookup per entity kind.
func (s *serviceImpl) resolve(ctx context.Context, bookings []model.Booking) ([]dto.BookingResponse, error) {
	res := make([]dto.BookingResponse, len(bookings))
	if len(bookings) == 0 {
		return res, nil
	}

	roomIDs := make([]string, 0, len(bookings))
	customerIDs := make([]string, 0, len(bookings))
	seenRooms := make(map[string]struct{}, len(bookings))
	seenCustomers := make(map[string]struct{}, len(bookings))

	for _, booking := range bookings {
		if _, ok := seenRooms[booking.RoomID]; !ok {
			seenRooms[booking.RoomID] = struct{}{}
			roomIDs = append(roomIDs, booking.RoomID)
		}

		if _, ok := seenCustomers[booking.CustomerID]; !ok {
			seenCustomers[booking.CustomerID] = struct{}{}
			customerIDs = append(customerIDs, booking.CustomerID)
		}
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(roomIDs, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booking rooms")

		return nil, fmt.Errorf("failed to resolve booking rooms: %w", err)
	}

	customers, err := s.customerRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(customerIDs, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booking customers")

		return nil, fmt.Errorf("failed to resolve booking customers: %w", err)
	}

	roomByID := make(map[string]roomDto.RoomResponse, len(rooms))
	for _, room := range rooms {
		var r roomDto.RoomResponse
		r.FromModel(room)
		roomByID[room.ID] = r
	}

	customerByID := make(map[string]customerDto.CustomerResponse, len(customers))
	for _, customer := range customers {
		var c customerDto.CustomerResponse
		c.FromModel(customer)
		customerByID[customer.ID] = c
	}

	for i, booking := range bookings {
		res[i].FromModel(booking)

		if room, ok := roomByID[booking.RoomID]; ok {
			res[i].Room = &room
		}

		if customer, ok := customerByID[booking.CustomerID]; ok {
			res[i].Customer = &customer
		}
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if id != constant.Empty {
		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)

	if err := s.cache.Delete(c, constant.CacheKeyDashboardStats); err != nil {
		log.Error().Err(err).Msg("failed to delete dashboard stats from cache")
	}
}

func (s *serviceImpl) publish(ctx context.Context, event dto.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.publisher.Publish(c, s.cfg.Kafka.BookingTopic, kafka.Message{Key: event.BookingID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("event", event.Type).Str("bookingID", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := shared.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check_in must be a valid date") // nolint:wrapcheck
	}

	out, err := shared.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check_out must be a valid date") // nolint:wrapcheck
	}

	if !out.After(in) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	return in, out, nil
}
