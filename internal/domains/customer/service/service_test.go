package service_test

import (
	"context"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	customerMocks "hotel/internal/domains/customer/mocks"
	"hotel/internal/domains/customer/model"
	"hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/customer/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*customerMocks.MockCustomer, *cacheMocks.MockRedisCache, service.Customer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := customerMocks.NewMockCustomer(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Lease(gomock.Any(), gomock.Any()).Return("lease", nil).AnyTimes()
	redisCache.EXPECT().Fill(gomock.Any(), gomock.Any(), "lease", gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, redisCache, service.New(repo, &config.Config{}, redisCache, mocks.NewOtel())
}

func emailOf(t *testing.T, filter gDto.FilterGroup) any {
	t.Helper()

	require.Len(t, filter.Filters, 1)
	f, ok := filter.Filters[0].(gDto.Filter)
	require.True(t, ok)
	assert.Equal(t, model.FieldEmail, f.Field)

	return f.Value
}

func TestCustomerService_Upsert(t *testing.T) {
	t.Run("inserts a new customer with normalized email", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Customer, error) {
				assert.Equal(t, "jane@example.com", emailOf(t, filter))

				return model.Customer{}, nil
			})
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, customer model.Customer) error {
				assert.Equal(t, "jane@example.com", customer.Email)
				assert.Equal(t, "Jane", customer.Name)
				assert.Equal(t, "12 Harbour Rd", customer.Address)
				assert.Equal(t, constant.ContextGuest, customer.CreatedBy)

				return nil
			})

		res, err := svc.Upsert(context.Background(), dto.UpsertCustomerRequest{
			Name: " Jane ", Email: "  Jane@Example.COM ", Phone: "555-0101", Address: "12 Harbour Rd",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "jane@example.com", res.Email)
	})

	t.Run("updates only name and phone of an existing customer", func(t *testing.T) {
		repo, _, svc := setup(t)

		existing := model.Customer{ID: "cust-1", Name: "Old", Email: "jane@example.com", Phone: "000", Address: "Old street"}

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "New", fields[model.FieldName])
				assert.Equal(t, "555-0101", fields[model.FieldPhone])
				assert.NotContains(t, fields, model.FieldAddress)
				assert.NotContains(t, fields, model.FieldEmail)

				return nil
			})

		res, err := svc.Upsert(context.Background(), dto.UpsertCustomerRequest{
			Name: "New", Email: "JANE@example.com", Phone: "555-0101", Address: "New street",
		})
		require.NoError(t, err)
		assert.Equal(t, "cust-1", res.ID)
		assert.Equal(t, "New", res.Name)
		assert.Equal(t, "555-0101", res.Phone)
		assert.Equal(t, "Old street", res.Address)
	})

	t.Run("second upsert with the same email updates instead of inserting", func(t *testing.T) {
		repo, _, svc := setup(t)

		var stored model.Customer

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, gDto.FilterGroup, ...string) (model.Customer, error) {
				return stored, nil
			}).Times(2)

		gomock.InOrder(
			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, customer model.Customer) error {
					stored = customer

					return nil
				}),
			repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		first, err := svc.Upsert(context.Background(), dto.UpsertCustomerRequest{Name: "A", Email: "a@x.io", Phone: "1"})
		require.NoError(t, err)

		second, err := svc.Upsert(context.Background(), dto.UpsertCustomerRequest{Name: "B", Email: "A@X.io", Phone: "2"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "B", second.Name)
	})

	validation := []struct {
		name string
		req  dto.UpsertCustomerRequest
	}{
		{name: "missing name", req: dto.UpsertCustomerRequest{Name: "  ", Email: "a@x.io", Phone: "1"}},
		{name: "missing email", req: dto.UpsertCustomerRequest{Name: "A", Phone: "1"}},
		{name: "invalid email", req: dto.UpsertCustomerRequest{Name: "A", Email: "nope", Phone: "1"}},
		{name: "missing phone", req: dto.UpsertCustomerRequest{Name: "A", Email: "a@x.io"}},
	}

	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := setup(t)

			_, err := svc.Upsert(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}

	t.Run("store failure on lookup", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, assert.AnError)

		_, err := svc.Upsert(context.Background(), dto.UpsertCustomerRequest{Name: "A", Email: "a@x.io", Phone: "1"})
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("store failure on insert", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := svc.Upsert(context.Background(), dto.UpsertCustomerRequest{Name: "A", Email: "a@x.io", Phone: "1"})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestCustomerService_GetAll(t *testing.T) {
	t.Run("searches name email and phone", func(t *testing.T) {
		repo, redisCache, svc := setup(t)
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Customer, error) {
				assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)
				assert.Equal(t, gDto.FilterGroupOperatorOr, filter.Operator)
				assert.Len(t, filter.Filters, 3)

				return []model.Customer{{ID: "cust-1", Name: "Jane"}}, nil
			})

		res, err := svc.GetAll(context.Background(), "jan")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "cust-1", res[0].ID)
	})

	t.Run("store failure", func(t *testing.T) {
		repo, redisCache, svc := setup(t)
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

		_, err := svc.GetAll(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestSearchFilter(t *testing.T) {
	assert.Empty(t, dto.SearchFilter("   ").Filters)

	group := dto.SearchFilter("jan")
	where, args := group.GetWhereClause()
	assert.Contains(t, where, "LOWER(name) LIKE LOWER(:search_name)")
	assert.Contains(t, where, " OR ")
	assert.Equal(t, "%jan%", args["search_phone"])

	escaped := dto.SearchFilter("j_n")
	_, args = escaped.GetWhereClause()
	assert.Equal(t, `%j\_n%`, args["search_name"])
}

func TestCustomerService_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{ID: "cust-1", Email: "a@x.io"}, nil)

		res, err := svc.GetByEmail(context.Background(), "A@X.io")
		require.NoError(t, err)
		assert.Equal(t, "cust-1", res.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)

		_, err := svc.GetByEmail(context.Background(), "nobody@x.io")
		assert.True(t, failure.IsNotFound(err))
	})
}
