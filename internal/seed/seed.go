// Package seed loads an admin account and a demo catalogue into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingService "hotel/internal/domains/booking/service"
	customerDto "hotel/internal/domains/customer/model/dto"
	customerService "hotel/internal/domains/customer/service"
	"hotel/internal/domains/pricing"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Seeder struct {
	cfg         *config.Config
	userRepo    userRepo.User
	roomRepo    roomRepo.Room
	customerSvc customerService.Customer
	bookingSvc  bookingService.Booking
	cache       cache.RedisCache
}

func New(
	cfg *config.Config,
	userRepo userRepo.User,
	roomRepo roomRepo.Room,
	customerSvc customerService.Customer,
	bookingSvc bookingService.Booking,
	cache cache.RedisCache,
) *Seeder {
	return &Seeder{
		cfg:         cfg,
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		customerSvc: customerSvc,
		bookingSvc:  bookingSvc,
		cache:       cache,
	}
}

// Run is safe to repeat: the admin is created once, customers are upserted, and rooms and
// bookings are only loaded while the room catalogue is empty.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.admin(ctx); err != nil {
		return err
	}

	rooms, err := s.rooms(ctx)
	if err != nil {
		return err
	}

	customers, err := s.customers(ctx)
	if err != nil {
		return err
	}

	if len(rooms) == 0 {
		log.Info().Msg("Rooms already present, skipping demo bookings")

		return nil
	}

	return s.bookings(ctx, rooms, customers)
}

func (s *Seeder) admin(ctx context.Context) error {
	email := customerDto.NormalizeEmail(s.cfg.Seed.AdminEmail)

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	if exist {
		log.Info().Str("email", email).Msg("Admin user already exists")

		return nil
	}

	hashed, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := userModel.User{
		ID:       uuid.NewString(),
		Name:     s.cfg.Seed.AdminName,
		Email:    email,
		Password: hashed,
		Role:     constant.RoleAdmin,
		Active:   true,
		Metadata: gModel.NewMetadata(constant.ContextSystem, timezone.Now()),
	}

	if err = s.userRepo.Insert(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("email", email).Msg("Admin user created")

	return nil
}

func (s *Seeder) rooms(ctx context.Context) ([]roomModel.Room, error) {
	count, err := s.roomRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	if count > 0 {
		return nil, nil
	}

	rooms := make([]roomModel.Room, len(demoRooms))
	for i := range demoRooms {
		rooms[i] = demoRooms[i].ToModel(constant.ContextSystem)
	}

	if err = s.roomRepo.InsertBulk(ctx, rooms); err != nil {
		return nil, fmt.Errorf("failed to insert demo rooms: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyRoomPrefix)

	if err = s.cache.Delete(ctx, constant.CacheKeyDashboardStats); err != nil {
		log.Error().Err(err).Msg("failed to delete dashboard stats from cache")
	}

	log.Info().Int("count", len(rooms)).Msg("Demo rooms created")

	return rooms, nil
}

func (s *Seeder) customers(ctx context.Context) ([]customerDto.CustomerResponse, error) {
	customers := make([]customerDto.CustomerResponse, 0, len(demoCustomers))

	for _, req := range demoCustomers {
		customer, err := s.customerSvc.Upsert(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert customer %s: %w", req.Email, err)
		}

		customers = append(customers, customer)
	}

	log.Info().Int("count", len(customers)).Msg("Demo customers upserted")

	return customers, nil
}

func (s *Seeder) bookings(ctx context.Context, rooms []roomModel.Room, customers []customerDto.CustomerResponse) error {
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, demo := range demoBookings {
		if demo.room >= len(rooms) || demo.customer >= len(customers) {
			continue
		}

		room := rooms[demo.room]
		checkIn := today.AddDate(0, 0, demo.inDays)
		checkOut := checkIn.AddDate(0, 0, demo.nights)
		total := pricing.ComputeTotalPrice(checkIn, checkOut, room.Price)

		req := bookingDto.CreateBookingRequest{
			RoomID:          room.ID,
			CustomerID:      customers[demo.customer].ID,
			CheckIn:         timezone.Format(checkIn, constant.DateOnlyFormat),
			CheckOut:        timezone.Format(checkOut, constant.DateOnlyFormat),
			Guests:          demo.guests,
			TotalPrice:      &total,
			Status:          demo.status,
			SpecialRequests: demo.specialRequests,
		}

		if _, err := s.bookingSvc.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to create demo booking for room %s: %w", room.Name, err)
		}
	}

	log.Info().Int("count", len(demoBookings)).Msg("Demo bookings created")

	return nil
}

type demoBooking struct {
	room, customer  int
	inDays, nights  int
	guests          int
	status          bookingModel.Status
	specialRequests string
}

var demoBookings = []demoBooking{
	{room: 1, customer: 0, inDays: 1, nights: 3, guests: 2, status: bookingModel.StatusConfirmed, specialRequests: "Late check-in requested"},
	{room: 1, customer: 1, inDays: 7, nights: 2, guests: 2, status: bookingModel.StatusPending},
	{room: 3, customer: 2, inDays: 10, nights: 2, guests: 4, status: bookingModel.StatusConfirmed, specialRequests: "Anniversary celebration, champagne requested"},
}

var demoCustomers = []customerDto.UpsertCustomerRequest{
	{Name: "John Doe", Email: "john.doe@example.com", Phone: "+1-555-0101", Address: "123 Main St, New York, NY 10001"},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "+1-555-0102", Address: "456 Oak Ave, Los Angeles, CA 90001"},
	{Name: "Robert Johnson", Email: "robert.j@example.com", Phone: "+1-555-0103", Address: "789 Pine Rd, Chicago, IL 60601"},
}

func price(v float64) *float64 {
	return &v
}

var demoRooms = []roomDto.CreateRoomRequest{
	{
		Name: "Standard Single Room", Type: roomModel.TypeSingle, Price: price(120), Capacity: 1,
		Description: "Basic, comfortable room with a queen bed. Perfect for solo travelers.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Work Desk"},
	},
	{
		Name: "Superior Double Room", Type: roomModel.TypeDouble, Price: price(180), Capacity: 2, Featured: true,
		Description: "Slightly larger than standard, with better views and upgraded amenities.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Work Desk", "Coffee Maker", "City View"},
	},
	{
		Name: "Deluxe Ocean View", Type: roomModel.TypeDeluxe, Price: price(350), Capacity: 4, Featured: true,
		Description: "More spacious with breathtaking ocean views and high-end furnishings.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Ocean View", "Balcony", "Room Service"},
	},
	{
		Name: "Executive Suite", Type: roomModel.TypeSuite, Price: price(500), Capacity: 6, Featured: true,
		Description: "Large suite with living room, work desk, and premium amenities.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Living Room", "Work Area", "Butler Service"},
	},
	{
		Name: "Honeymoon Suite", Type: roomModel.TypeHoneymoon, Price: price(450), Capacity: 2,
		Description: "Romantic suite designed for couples with Jacuzzi and special decor.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Jacuzzi", "Romantic Lighting", "Champagne"},
	},
	{
		Name: "Family Suite", Type: roomModel.TypeFamily, Price: price(320), Capacity: 6,
		Description: "Multiple bedrooms and larger living space perfect for families.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Kitchenette", "Extra Beds", "Play Area"},
	},
	{
		Name: "Accessible Room", Type: roomModel.TypeAccessible, Price: price(160), Capacity: 2,
		Description: "Room designed for guests with disabilities.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Wheelchair Access", "Roll-in Shower", "Grab Bars"},
	},
	{
		Name: "Presidential Suite", Type: roomModel.TypePresidential, Price: price(800), Capacity: 8, Featured: true,
		Description: "Most exclusive suite with personal butler service and premium furnishings.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Butler Service", "Private Dining", "Panoramic Views"},
	},
	{
		Name: "Penthouse Suite", Type: roomModel.TypePenthouse, Price: price(1000), Capacity: 6, Featured: true,
		Description: "Top floor ultra-luxury with private terrace and luxury amenities.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Private Terrace", "Luxury Bath", "City Views"},
	},
	{
		Name: "Villa with Pool", Type: roomModel.TypeVilla, Price: price(1200), Capacity: 10, Featured: true,
		Description: "Separate luxury unit with private pool and exclusive amenities.",
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Private Pool", "Garden", "Full Kitchen", "Concierge"},
	},
}
