package customer_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/customer/service/mocks"
	"hotel/internal/handlers/customer"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockCustomer, http.Handler) {
	t.Helper()

	svc := mocks.NewMockCustomer(gomock.NewController(t))
	handler := customer.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestUpsertCustomer(t *testing.T) {
	t.Run("upserted", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().Upsert(gomock.Any(), dto.UpsertCustomerRequest{Name: "Jane", Email: "Jane@Example.com", Phone: "555"}).
			Return(dto.CustomerResponse{ID: "c1", Name: "Jane", Email: "jane@example.com", Phone: "555"}, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers",
			strings.NewReader(`{"name":"Jane","email":"Jane@Example.com","phone":"555"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":"jane@example.com"`)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, h := setup(t)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers",
			strings.NewReader(`{"name":"Jane","email":"jane","phone":"555"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"email must be a valid email address"}`, rec.Body.String())
	})
}

func TestGetCustomers(t *testing.T) {
	svc, h := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), "jan").Return([]dto.CustomerResponse{{ID: "c1"}}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers?search=jan", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"c1"`)
}
