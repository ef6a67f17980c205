package model

import (
	roomModel "hotel/internal/domains/room/model"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldUserID            = "user_id"
	FieldRoomID            = "room_id"
	FieldCheckIn           = "check_in"
	FieldCheckOut          = "check_out"
	FieldMaxNumberOfAdults = "max_number_of_adults"
	FieldUserEmail         = "user_email"
	FieldFirstName         = "first_name"
	FieldLastName          = "last_name"
	FieldMessage           = "message"
	FieldPaymentStatus     = "payment_status"
	FieldTotalPrice        = "total_price"
	FieldStatus            = "status"
)

const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}

	return false
}

type PaymentStatus string

const (
	PaymentPayAtHotel PaymentStatus = "pay-at-hotel"
	PaymentPaid       PaymentStatus = "paid"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPayAtHotel, PaymentPaid:
		return true
	}

	return false
}

type Booking struct {
	ID                string        `db:"id"`
	UserID            *string       `db:"user_id"`
	RoomID            string        `db:"room_id"`
	CheckIn           time.Time     `db:"check_in"`
	CheckOut          time.Time     `db:"check_out"`
	MaxNumberOfAdults int           `db:"max_number_of_adults"`
	UserEmail         string        `db:"user_email"`
	FirstName         string        `db:"first_name"`
	LastName          *string       `db:"last_name"`
	Message           *string       `db:"message"`
	PaymentStatus     PaymentStatus `db:"payment_status"`
	TotalPrice        float64       `db:"total_price"`
	Status            Status        `db:"status"`
	model.Metadata
}

// BookingDetail is a booking read together with its room and, when linked, its account.
type BookingDetail struct {
	Booking
	RoomName          string  `db:"room_name"            table:"rooms" column:"name"`
	RoomNumber        *string `db:"room_number"          table:"rooms" column:"room_number"`
	RoomPricePerNight float64 `db:"room_price_per_night" table:"rooms" column:"price_per_night"`
	AccountFirstName  *string `db:"account_first_name"   table:"users" column:"first_name"`
	AccountLastName   *string `db:"account_last_name"    table:"users" column:"last_name"`
	AccountEmail      *string `db:"account_email"        table:"users" column:"email"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN " + roomModel.TableName + " ON " + roomModel.TableName + "." + roomModel.FieldID + " = " + TableName + "." + FieldRoomID +
		" LEFT JOIN " + userModel.TableName + " ON " + userModel.TableName + "." + userModel.FieldID + " = " + TableName + "." + FieldUserID
}

// FullName joins the supplied first and last name.
func (b Booking) FullName() string {
	if b.LastName == nil || *b.LastName == "" {
		return b.FirstName
	}

	return b.FirstName + " " + *b.LastName
}
