package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/customer/model"
	"hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/customer/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllCustomer = "customer:gets"
)

type Customer interface {
	Upsert(ctx context.Context, req dto.UpsertCustomerRequest) (dto.CustomerResponse, error)
	GetAll(ctx context.Context, search string) ([]dto.CustomerResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.CustomerResponse, error)
}

type serviceImpl struct {
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Upsert looks the customer up by normalized email. A new customer is inserted with every field,
// an existing one only gets name and phone refreshed.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertCustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertCustomer")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	filter := emailFilter(req.Email)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to look up customer")

		return res, fmt.Errorf("failed to look up customer: %w", err)
	}

	if existing.ID == constant.Empty {
		customer := req.ToModel(user)

		if err = s.repo.Insert(ctx, customer); err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("failed to create customer")

			return res, fmt.Errorf("failed to create customer: %w", err)
		}

		s.invalidate(ctx)
		res.FromModel(customer)

		return res, nil
	}

	fields := shared.TransformFields(dto.UpdateCustomerRequest{Name: req.Name, Phone: req.Phone}, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to update customer")

		return res, fmt.Errorf("failed to update customer: %w", err)
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.ModifiedBy = user
	existing.ModifiedAt = timezone.Now()

	s.invalidate(ctx)
	res.FromModel(existing)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, search string) (res []dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCustomers")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params := gDto.Newest()
	filter := dto.SearchFilter(search)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	lease := shared.LeaseCache(ctx, s.cache, cacheKey)

	customers, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return nil, fmt.Errorf("failed to get customers: %w", err)
	}

	res = dto.FromModels(customers)

	shared.FillCache(ctx, s.cache, cacheKey, lease, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) GetByEmail(ctx context.Context, email string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomerByEmail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	customer, err := s.repo.Get(ctx, emailFilter(dto.NormalizeEmail(email)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer by email")

		return res, fmt.Errorf("failed to get customer by email: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.FieldEmail, email))
}

// invalidate drops cached customer lists and the bookings that embed customers.
func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllCustomer)
	shared.InvalidateCaches(c, s.cache, constant.CacheKeyBookingPrefix)
}
