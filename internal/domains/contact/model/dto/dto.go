package dto

import (
	"hotel/internal/domains/contact/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"strings"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=255"`
	FullName string  `json:"full_name" validate:"required,max=150"`
	Message  string  `json:"message"   validate:"required,max=5000"`
	Number   *string `json:"number"    validate:"omitempty,max=30"`
}

// Normalize trims every field and lower-cases the email.
func (c *CreateContactRequest) Normalize() {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FullName = strings.TrimSpace(c.FullName)
	c.Message = strings.TrimSpace(c.Message)

	if c.Number != nil {
		number := strings.TrimSpace(*c.Number)
		c.Number = &number

		if number == "" {
			c.Number = nil
		}
	}
}

func (c *CreateContactRequest) ToModel(actor string) model.Contact {
	return model.Contact{
		ID:       uuid.NewString(),
		Email:    c.Email,
		FullName: c.FullName,
		Message:  c.Message,
		Number:   c.Number,
		Metadata: gModel.NewMetadata(actor),
	}
}

type ContactResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Message  string  `json:"message"`
	Number   *string `json:"number"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Message = model.Message
	r.Number = model.Number
	r.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
