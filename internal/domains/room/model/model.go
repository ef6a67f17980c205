package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID                = "id"
	FieldName              = "name"
	FieldRoomNumber        = "room_number"
	FieldDescription       = "description"
	FieldPricePerNight     = "price_per_night"
	FieldMaxNumberOfAdults = "max_number_of_adults"
	FieldFeatures          = "features"
	FieldImages            = "images"
	FieldIsAvailable       = "is_available"
)

const (
	CacheGetRoom    = "room:get"
	CacheGetAllRoom = "room:gets"
	CacheCountRoom  = "room:count"
)

type Room struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	RoomNumber        *string        `db:"room_number"`
	Description       string         `db:"description"`
	PricePerNight     float64        `db:"price_per_night"`
	MaxNumberOfAdults int            `db:"max_number_of_adults"`
	Features          pq.StringArray `db:"features"`
	Images            pq.StringArray `db:"images"`
	IsAvailable       bool           `db:"is_available"`
	model.Metadata
}
