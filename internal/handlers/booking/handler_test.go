package booking_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service/mocks"
	"hotel/internal/handlers/booking"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func setup(t *testing.T) (*mocks.MockBooking, http.Handler) {
	t.Helper()

	svc := mocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func request(method, target string, body io.Reader, role, email string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	if role != "" {
		ctx := context.WithValue(req.Context(), constant.ContextKeyUserRole, role)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)
		req = req.WithContext(ctx)
	}

	return req
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestGetBookingsByEmail_TracesRejection(t *testing.T) {
	recorder := otelMocks.NewRecorder()
	handler := booking.New(mocks.NewMockBooking(gomock.NewController(t)), recorder)

	router := chi.NewRouter()
	handler.Router(router)

	rec, _ := do(t, router, request(http.MethodGet, "/bookings/user/jane@example.com", nil, constant.RoleCustomer, "john@example.com"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	scopes := recorder.Scopes()
	require.Len(t, scopes, 1)
	assert.True(t, scopes[0].Ended())
	assert.Equal(t, []error{failure.ResourceRestrictedError}, scopes[0].Errors())
	assert.Empty(t, scopes[0].Events())
}

func TestCreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, "r1", req.RoomID)
				assert.Equal(t, "2025-03-01", req.CheckIn)
				assert.Empty(t, req.Status)

				return dto.BookingResponse{ID: "b1", Status: model.StatusPending}, nil
			})

		payload := `{"room_id":"r1","customer_id":"c1","check_in":"2025-03-01","check_out":"2025-03-03","guests":2,"total_price":360}`
		rec, body := do(t, h, request(http.MethodPost, "/bookings", strings.NewReader(payload), "", ""))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, string(body.Data), `"status":"pending"`)
	})

	t.Run("zero guests", func(t *testing.T) {
		_, h := setup(t)

		payload := `{"room_id":"r1","customer_id":"c1","check_in":"2025-03-01","check_out":"2025-03-03","guests":0,"total_price":360}`
		rec, body := do(t, h, request(http.MethodPost, "/bookings", strings.NewReader(payload), "", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "guests is required", body.Error)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.NotFound("room not found"))

		payload := `{"room_id":"nope","customer_id":"c1","check_in":"2025-03-01","check_out":"2025-03-03","guests":1,"total_price":0}`
		rec, body := do(t, h, request(http.MethodPost, "/bookings", strings.NewReader(payload), "", ""))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "room not found", body.Error)
	})
}

func TestReserve(t *testing.T) {
	svc, h := setup(t)

	svc.EXPECT().Reserve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req dto.ReserveRequest) (dto.BookingResponse, error) {
			assert.Equal(t, "jane@example.com", req.Email)

			return dto.BookingResponse{ID: "b1", TotalPrice: 360}, nil
		})

	payload := `{"room_id":"r1","check_in":"2025-03-01","check_out":"2025-03-03","guests":2,"name":"Jane","email":"jane@example.com","phone":"555"}`
	rec, body := do(t, h, request(http.MethodPost, "/bookings/reserve", strings.NewReader(payload), "", ""))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, string(body.Data), `"total_price":360`)
}

func TestGetBookings(t *testing.T) {
	svc, h := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), dto.BookingFilter{RoomID: "r1", Status: model.StatusConfirmed}).
		Return([]dto.BookingResponse{{ID: "b1"}}, nil)

	rec, body := do(t, h, request(http.MethodGet, "/bookings?room_id=r1&status=confirmed", nil, constant.RoleAdmin, ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), `"id":"b1"`)
}

func TestGetBookingByID_NotFound(t *testing.T) {
	svc, h := setup(t)

	svc.EXPECT().Get(gomock.Any(), "b9").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

	rec, body := do(t, h, request(http.MethodGet, "/bookings/b9", nil, constant.RoleAdmin, ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "booking not found", body.Error)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().UpdateStatus(gomock.Any(), dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "b1").
			Return(dto.BookingResponse{ID: "b1", Status: model.StatusConfirmed}, nil)

		rec, body := do(t, h, request(http.MethodPut, "/bookings/b1", strings.NewReader(`{"status":"confirmed"}`), constant.RoleAdmin, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(body.Data), `"status":"confirmed"`)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, h := setup(t)

		rec, body := do(t, h, request(http.MethodPut, "/bookings/b1", strings.NewReader(`{"status":"archived"}`), constant.RoleAdmin, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "status has an unsupported value", body.Error)
	})
}

func TestGetBookingsByEmail(t *testing.T) {
	t.Run("own bookings", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().GetByCustomerEmail(gomock.Any(), "jane@example.com").Return([]dto.BookingResponse{}, nil)

		rec, body := do(t, h, request(http.MethodGet, "/bookings/user/jane@example.com", nil, constant.RoleCustomer, "jane@example.com"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, string(body.Data))
	})

	t.Run("admin sees anyone", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().GetByCustomerEmail(gomock.Any(), "jane@example.com").Return([]dto.BookingResponse{{ID: "b1"}}, nil)

		rec, _ := do(t, h, request(http.MethodGet, "/bookings/user/jane@example.com", nil, constant.RoleAdmin, "admin@hotel.test"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone else", func(t *testing.T) {
		_, h := setup(t)

		rec, body := do(t, h, request(http.MethodGet, "/bookings/user/jane@example.com", nil, constant.RoleCustomer, "john@example.com"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, body.Success)
		assert.Equal(t, failure.ResourceRestrictedError.Message, body.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, h := setup(t)

		svc.EXPECT().GetByCustomerEmail(gomock.Any(), "jane@example.com").Return(nil, assert.AnError)

		rec, body := do(t, h, request(http.MethodGet, "/bookings/user/jane@example.com", nil, constant.RoleAdmin, ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, assert.AnError.Error(), body.Message)
	})
}
