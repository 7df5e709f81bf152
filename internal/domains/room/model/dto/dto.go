package dto

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"strings"

	"hotel/internal/domains/pricing"
	"hotel/internal/domains/room/model"
	"hotel/shared/base64"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	ArgMinPrice = "min_price"
	ArgMaxPrice = "max_price"
)

type CreateRoomRequest struct {
	Name        string     `json:"name"        validate:"required,max=100"`
	Type        model.Type `json:"type"        validate:"required,enum"`
	Description string     `json:"description" validate:"required"`
	Price       *float64   `json:"price"       validate:"required,min=0"`
	Capacity    int        `json:"capacity"    validate:"required,min=1"`
	Amenities   []string   `json:"amenities"   validate:"omitempty,dive,required"`
	Images      []string   `json:"images"      validate:"omitempty,dive,url"`
	Featured    bool       `json:"featured"`
	Available   *bool      `json:"available"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		Type:        c.Type,
		Description: c.Description,
		Price:       *c.Price,
		Capacity:    c.Capacity,
		Amenities:   nonNil(c.Amenities),
		Images:      nonNil(c.Images),
		Featured:    c.Featured,
		Available:   available,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateRoomRequest is a partial update, only non-zero fields are written.
type UpdateRoomRequest struct {
	Name        string         `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Type        model.Type     `db:"type"        json:"type"        validate:"omitempty,enum"`
	Description string         `db:"description" json:"description" validate:"omitempty"`
	Price       *float64       `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Capacity    *int           `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Amenities   pq.StringArray `db:"amenities"   json:"amenities"   validate:"omitempty,dive,required"`
	Images      pq.StringArray `db:"images"      json:"images"      validate:"omitempty,dive,url"`
	Featured    *bool          `db:"featured"    json:"featured"`
	Available   *bool          `db:"available"   json:"available"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

// UploadImageDataRequest carries the image inline as a base64 data URI.
type UploadImageDataRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

type inlineFile struct {
	*bytes.Reader
}

func (inlineFile) Close() error {
	return nil
}

func (r UploadImageDataRequest) ToUploadRequest() (UploadImageRequest, error) {
	contentType, data, err := base64.Decode(r.Image)
	if err != nil {
		return UploadImageRequest{}, failure.BadRequest(err)
	}

	return UploadImageRequest{
		Image: &multipart.FileHeader{
			Filename: "image." + base64.Extension(contentType),
			Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: {contentType}},
			Size:     int64(len(data)),
		},
		ImageFile: inlineFile{bytes.NewReader(data)},
	}, nil
}

type RoomFilter struct {
	Type      string
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
	Featured  *bool
}

// ToFilterGroup ANDs every filter that is set.
func (f RoomFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Type != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldType, Value: f.Type, Operator: gDto.FilterOperatorEq,
		})
	}

	if f.MinPrice != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: ArgMinPrice, Field: model.FieldPrice, Value: *f.MinPrice, Operator: gDto.FilterOperatorGreaterEq,
		})
	}

	if f.MaxPrice != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: ArgMaxPrice, Field: model.FieldPrice, Value: *f.MaxPrice, Operator: gDto.FilterOperatorLessEq,
		})
	}

	if f.Available != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldAvailable, Value: *f.Available, Operator: gDto.FilterOperatorEq,
		})
	}

	if f.Featured != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldFeatured, Value: *f.Featured, Operator: gDto.FilterOperatorEq,
		})
	}

	return group
}

type RoomResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        model.Type `json:"type"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Capacity    int        `json:"capacity"`
	Amenities   []string   `json:"amenities"`
	Images      []string   `json:"images"`
	Featured    bool       `json:"featured"`
	Available   bool       `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Amenities = nonNil(model.Amenities)
	r.Images = nonNil(model.Images)
	r.Featured = model.Featured
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type QuoteResponse struct {
	RoomID string `json:"room_id"`
	pricing.Quote
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
