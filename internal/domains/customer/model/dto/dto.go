package dto

import (
	"strings"

	"hotel/internal/domains/customer/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type UpsertCustomerRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required,max=30"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// Normalize trims every field and lowercases the email.
func (u *UpsertCustomerRequest) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	u.Address = strings.TrimSpace(u.Address)
}

func (u *UpsertCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:       uuid.NewString(),
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Address:  u.Address,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateCustomerRequest holds the fields an upsert may overwrite on an existing customer.
type UpdateCustomerRequest struct {
	Name  string `db:"name"`
	Phone string `db:"phone"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SearchFilter matches the term against name, email and phone.
func SearchFilter(search string) gDto.FilterGroup {
	search = strings.TrimSpace(search)
	if search == "" {
		return gDto.FilterGroup{}
	}

	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
	for _, field := range []string{model.FieldName, model.FieldEmail, model.FieldPhone} {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "search_" + field,
			Field:    field,
			Value:    search,
			Operator: gDto.FilterOperatorLike,
		})
	}

	return group
}

type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	gDto.Metadata
}

func (c *CustomerResponse) FromModel(model model.Customer) {
	c.ID = model.ID
	c.Name = model.Name
	c.Email = model.Email
	c.Phone = model.Phone
	c.Address = model.Address
	c.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
