package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"strings"
)

type UserResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   *string `json:"last_name,omitempty"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"is_verified"`
	LastLogin  *string `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Role = model.Role
	r.IsVerified = model.IsVerified
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

// UpdateUserRequest is the admin view of an account.
type UpdateUserRequest struct {
	Role   *string `json:"role,omitempty"   db:"role"   validate:"omitempty,oneof=admin user"`
	Active *bool   `json:"active,omitempty" db:"active"`
}

// UpdateProfileRequest is what an account may change about itself.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" db:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty"  db:"last_name"  validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.FirstName != nil {
		trimmed := strings.TrimSpace(*r.FirstName)
		r.FirstName = &trimmed
	}

	if r.LastName != nil {
		trimmed := strings.TrimSpace(*r.LastName)
		r.LastName = &trimmed
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
