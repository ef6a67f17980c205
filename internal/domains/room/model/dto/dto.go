package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	Name              string                  `form:"name"                 validate:"required,max=100"`
	PricePerNight     float64                 `form:"price_per_night"      validate:"required,gt=0"`
	Description       string                  `form:"description"          validate:"required,max=2000"`
	MaxNumberOfAdults int                     `form:"max_number_of_adults" validate:"required,min=1,max=20"`
	RoomNumber        *string                 `form:"room_number"          validate:"omitempty,max=20"`
	Features          []string                `form:"features"             validate:"omitempty,dive,max=100"`
	IsAvailable       *bool                   `form:"is_available"`
	Images            []*multipart.FileHeader `form:"images"               validate:"required,min=1,max=5,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}

func (c *CreateRoomRequest) ToModel(actor string, imageURLs []string) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Room{
		ID:                uuid.NewString(),
		Name:              c.Name,
		RoomNumber:        c.RoomNumber,
		Description:       c.Description,
		PricePerNight:     c.PricePerNight,
		MaxNumberOfAdults: c.MaxNumberOfAdults,
		Features:          pq.StringArray(nonNil(c.Features)),
		Images:            pq.StringArray(nonNil(imageURLs)),
		IsAvailable:       available,
		Metadata:          gModel.NewMetadata(actor),
	}
}

// UpdateRoomRequest is a partial update; nil fields keep their stored value.
// New images are placed in front of the existing ones.
type UpdateRoomRequest struct {
	Name              *string                 `db:"name"                 form:"name"                 validate:"omitempty,min=1,max=100"`
	PricePerNight     *float64                `db:"price_per_night"      form:"price_per_night"      validate:"omitempty,gt=0"`
	Description       *string                 `db:"description"          form:"description"          validate:"omitempty,min=1,max=2000"`
	MaxNumberOfAdults *int                    `db:"max_number_of_adults" form:"max_number_of_adults" validate:"omitempty,min=1,max=20"`
	RoomNumber        *string                 `db:"room_number"          form:"room_number"          validate:"omitempty,max=20"`
	Features          pq.StringArray          `db:"features"             form:"features"             validate:"omitempty,dive,max=100"`
	IsAvailable       *bool                   `db:"is_available"         form:"is_available"`
	Images            []*multipart.FileHeader `form:"images"               validate:"omitempty,max=5,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Name == nil && u.PricePerNight == nil && u.Description == nil && u.MaxNumberOfAdults == nil &&
		u.RoomNumber == nil && u.Features == nil && u.IsAvailable == nil && len(u.Images) == 0
}

type RoomResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	RoomNumber        string   `json:"room_number"`
	Description       string   `json:"description"`
	PricePerNight     float64  `json:"price_per_night"`
	MaxNumberOfAdults int      `json:"max_number_of_adults"`
	Features          []string `json:"features"`
	Images            []string `json:"images"`
	IsAvailable       bool     `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.PricePerNight = model.PricePerNight
	r.MaxNumberOfAdults = model.MaxNumberOfAdults
	r.Features = nonNil(model.Features)
	r.Images = nonNil(model.Images)
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)

	if model.RoomNumber != nil {
		r.RoomNumber = *model.RoomNumber
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// SplitFeatures accepts repeated form values as well as one comma separated value.
func SplitFeatures(values []string) []string {
	features := []string{}

	for _, value := range values {
		for _, feature := range strings.Split(value, ",") {
			if feature = strings.TrimSpace(feature); feature != "" {
				features = append(features, feature)
			}
		}
	}

	return features
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
