package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Name = model.Name
	u.Email = model.Email
	u.Role = model.Role
	u.Active = model.Active

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		u.LastLogin = &lastLogin
	}

	u.Metadata.FromModel(model.Metadata)
}
