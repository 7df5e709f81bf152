package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/booking/model"
	customerDto "hotel/internal/domains/customer/model/dto"
	"hotel/internal/domains/pricing"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// CreateBookingRequest references an existing room and customer. Dates are calendar dates
// (2006-01-02) or RFC3339 timestamps in the application timezone's offset.
type CreateBookingRequest struct {
	RoomID          string       `json:"room_id"          validate:"required"`
	CustomerID      string       `json:"customer_id"      validate:"required"`
	CheckIn         string       `json:"check_in"         validate:"required"`
	CheckOut        string       `json:"check_out"        validate:"required"`
	Guests          int          `json:"guests"           validate:"required,min=1"`
	TotalPrice      *float64     `json:"total_price"      validate:"required,min=0"`
	SpecialRequests string       `json:"special_requests" validate:"omitempty,max=1000"`
	Status          model.Status `json:"status"           validate:"omitempty,enum"`
}

func (c *CreateBookingRequest) ToModel(checkIn, checkOut time.Time, user string) model.Booking {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		CustomerID:      c.CustomerID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          c.Guests,
		TotalPrice:      *c.TotalPrice,
		Status:          status,
		SpecialRequests: strings.TrimSpace(c.SpecialRequests),
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

// ReserveRequest is the guest booking flow: the customer is upserted and the price computed server side.
type ReserveRequest struct {
	RoomID          string `json:"room_id"          validate:"required"`
	CheckIn         string `json:"check_in"         validate:"required"`
	CheckOut        string `json:"check_out"        validate:"required"`
	Guests          int    `json:"guests"           validate:"required,min=1"`
	Name            string `json:"name"             validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required,max=30"`
	Address         string `json:"address"          validate:"omitempty,max=255"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

func (r *ReserveRequest) ToCustomerRequest() customerDto.UpsertCustomerRequest {
	return customerDto.UpsertCustomerRequest{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

// StatusPatch is the partial update written by a status change.
type StatusPatch struct {
	Status model.Status `db:"status"`
}

type BookingFilter struct {
	CustomerID string
	RoomID     string
	Status     model.Status
}

func (f BookingFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.CustomerID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldCustomerID, Value: f.CustomerID, Operator: gDto.FilterOperatorEq,
		})
	}

	if f.RoomID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldRoomID, Value: f.RoomID, Operator: gDto.FilterOperatorEq,
		})
	}

	if f.Status != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldStatus, Value: string(f.Status), Operator: gDto.FilterOperatorEq,
		})
	}

	return group
}

// BookingResponse carries the booking with its room and customer resolved. Room or customer is
// null when the referenced record no longer exists.
type BookingResponse struct {
	ID              string                        `json:"id"`
	RoomID          string                        `json:"room_id"`
	CustomerID      string                        `json:"customer_id"`
	Room            *roomDto.RoomResponse         `json:"room"`
	Customer        *customerDto.CustomerResponse `json:"customer"`
	CheckIn         string                        `json:"check_in"`
	CheckOut        string                        `json:"check_out"`
	Nights          int                           `json:"nights"`
	Guests          int                           `json:"guests"`
	TotalPrice      float64                       `json:"total_price"`
	Status          model.Status                  `json:"status"`
	SpecialRequests string                        `json:"special_requests,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateOnlyFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateOnlyFormat)
	r.Nights = pricing.Nights(timezone.ToAppTime(model.CheckIn), timezone.ToAppTime(model.CheckOut))
	r.Guests = model.Guests
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)
}

// Event is published to the booking topic on every booking mutation.
type Event struct {
	Type           string       `json:"type"`
	BookingID      string       `json:"booking_id"`
	RoomID         string       `json:"room_id"`
	CustomerID     string       `json:"customer_id"`
	Status         model.Status `json:"status"`
	PreviousStatus model.Status `json:"previous_status,omitempty"`
	TotalPrice     float64      `json:"total_price"`
	OccurredAt     time.Time    `json:"occurred_at"`
}

func NewEvent(eventType string, booking model.Booking, previous model.Status) Event {
	return Event{
		Type:           eventType,
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		CustomerID:     booking.CustomerID,
		Status:         booking.Status,
		PreviousStatus: previous,
		TotalPrice:     booking.TotalPrice,
		OccurredAt:     timezone.Now(),
	}
}
