package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/internal/domains/dashboard/service/mocks"
	"hotel/internal/handlers/dashboard"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockDashboard, http.Handler) {
	t.Helper()

	svc := mocks.NewMockDashboard(gomock.NewController(t))
	handler := dashboard.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestGetStats(t *testing.T) {
	svc, h := setup(t)

	svc.EXPECT().ComputeStats(gomock.Any()).Return(dto.StatsResponse{
		TotalRooms:        4,
		AvailableRooms:    3,
		TotalBookings:     5,
		PendingBookings:   2,
		ConfirmedBookings: 1,
		TotalRevenue:      540,
	}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"total_rooms":4,"available_rooms":3,"total_bookings":5,
		"pending_bookings":2,"confirmed_bookings":1,"total_revenue":540
	}}`, rec.Body.String())
}

func TestGetStats_Error(t *testing.T) {
	svc, h := setup(t)

	svc.EXPECT().ComputeStats(gomock.Any()).Return(dto.StatsResponse{}, assert.AnError)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"`+assert.AnError.Error()+`"}`, rec.Body.String())
}
