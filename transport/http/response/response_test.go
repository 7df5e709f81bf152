package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		wantCode int
		wantBody string
	}{
		{
			name:     "data",
			write:    func(w http.ResponseWriter) { response.WithJSON(w, http.StatusCreated, map[string]int{"nights": 2}) },
			wantCode: http.StatusCreated,
			wantBody: `{"success":true,"data":{"nights":2}}`,
		},
		{
			name:     "message",
			write:    func(w http.ResponseWriter) { response.WithMessage(w, http.StatusOK, "room deleted") },
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"message":"room deleted"}`,
		},
		{
			name:     "error",
			write:    func(w http.ResponseWriter) { response.WithError(w, failure.NotFound("room not found")) },
			wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"error":"room not found"}`,
		},
		{
			name:     "error as message",
			write:    func(w http.ResponseWriter) { response.WithErrorMessage(w, assert.AnError) },
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"message":"` + assert.AnError.Error() + `"}`,
		},
		{
			name:     "rate limited",
			write:    response.WithRequestLimitExceeded,
			wantCode: http.StatusTooManyRequests,
			wantBody: `{"success":false,"message":"REQUEST LIMIT EXCEEDED"}`,
		},
		{
			name:     "shutting down",
			write:    response.WithPreparingShutdown,
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"success":false,"message":"SERVER PREPARING TO SHUT DOWN"}`,
		},
		{
			name:     "unencodable payload",
			write:    func(w http.ResponseWriter) { response.WithJSON(w, http.StatusOK, make(chan int)) },
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			tt.write(rec)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody == "" {
				return
			}

			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
