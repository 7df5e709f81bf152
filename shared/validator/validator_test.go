package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tier string

func (t tier) Valid() bool {
	return t == "gold" || t == "silver"
}

type guestRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Email    string   `json:"email"    validate:"required,email"`
	Guests   int      `json:"guests"   validate:"gte=1,lte=10"`
	Price    *float64 `json:"price"    validate:"required,min=0"`
	Tier     tier     `json:"tier"     validate:"omitempty,enum"`
	CheckIn  string   `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	Category string   `json:"category" validate:"omitempty,oneof=standard premium"`
}

func price(value float64) *float64 {
	return &value
}

func validRequest() guestRequest {
	return guestRequest{
		Name:     "Jane Guest",
		Email:    "jane@example.com",
		Guests:   2,
		Price:    price(0),
		Tier:     "gold",
		CheckIn:  "2025-01-10",
		Category: "premium",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *guestRequest)
		message string
	}{
		{name: "valid request", mutate: func(*guestRequest) {}},
		{name: "missing name", mutate: func(r *guestRequest) { r.Name = "" }, message: "name is required"},
		{name: "invalid email", mutate: func(r *guestRequest) { r.Email = "nope" }, message: "email must be a valid email address"},
		{name: "too many guests", mutate: func(r *guestRequest) { r.Guests = 11 }, message: "guests must be less than or equal to 10"},
		{name: "no guests", mutate: func(r *guestRequest) { r.Guests = 0 }, message: "guests must be greater than or equal to 1"},
		{name: "missing price", mutate: func(r *guestRequest) { r.Price = nil }, message: "price is required"},
		{name: "negative price", mutate: func(r *guestRequest) { r.Price = price(-1) }, message: "price must be greater than or equal to 0"},
		{name: "unknown enum value", mutate: func(r *guestRequest) { r.Tier = "bronze" }, message: "tier has an unsupported value"},
		{name: "bad date", mutate: func(r *guestRequest) { r.CheckIn = "10/01/2025" }, message: "check_in must be a date formatted as 2006-01-02"},
		{name: "bad oneof", mutate: func(r *guestRequest) { r.Category = "basic" }, message: "category must be one of standard premium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", expectError: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", expectError: true},
		{name: "valid enum", field: tier("silver"), tag: "enum"},
		{name: "invalid enum", field: tier("copper"), tag: "enum", expectError: true},
		{name: "enum on plain string", field: "gold", tag: "enum", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{name: "valid body", body: `{"name":"Jane","email":"jane@example.com","guests":2,"price":120}`},
		{name: "invalid email", body: `{"name":"Jane","email":"jane","guests":2,"price":120}`, expectError: true},
		{name: "malformed json", body: `{"name":"Jane","email":}`, expectError: true},
		{name: "empty object", body: `{}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &data)
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidation(t *testing.T) {
	type upload struct {
		Image string `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
	}

	ok := upload{Image: "data:image/png;base64,iVBORw0KGgo="}
	assert.NoError(t, validator.ValidateStruct(&ok))

	wrongType := upload{Image: "data:text/plain;base64,SGVsbG8="}
	err := validator.ValidateStruct(&wrongType)
	require.Error(t, err)
	assert.Equal(t, "image must be one of image/png image/jpeg", err.Error())

	tooBig := upload{Image: "data:image/png;base64," + strings.Repeat("A", 2*1024*1024)}
	err = validator.ValidateStruct(&tooBig)
	require.Error(t, err)
	assert.Equal(t, "image must not exceed 1 MB", err.Error())
}
