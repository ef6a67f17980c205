package dto

import (
	"errors"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/pricing"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDate = errors.New("dates must be formatted as YYYY-MM-DD or RFC3339")

type CreateBookingRequest struct {
	UserID            *string             `json:"user_id"              validate:"omitempty,uuid"`
	RoomID            string              `json:"room_id"              validate:"required,uuid"`
	CheckIn           string              `json:"check_in"             validate:"required"`
	CheckOut          string              `json:"check_out"            validate:"required"`
	MaxNumberOfAdults int                 `json:"max_number_of_adults" validate:"required,gte=1"`
	UserEmail         string              `json:"user_email"           validate:"required,email,max=255"`
	FirstName         string              `json:"first_name"           validate:"required,max=100"`
	LastName          *string             `json:"last_name"            validate:"omitempty,max=100"`
	Message           *string             `json:"message"              validate:"omitempty,max=2000"`
	PaymentStatus     model.PaymentStatus `json:"payment_status"       validate:"required,enum"`
	// Accepted for compatibility and never trusted: the total is always recomputed.
	TotalPrice *float64 `json:"total_price,omitempty"`
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{constant.DateOnlyFormat, constant.DateFormat} {
		if parsed, err := timezone.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = parseDate(c.CheckIn); err != nil {
		return checkIn, checkOut, err
	}

	if checkOut, err = parseDate(c.CheckOut); err != nil {
		return checkIn, checkOut, err
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(accountID *string, checkIn, checkOut time.Time, totalPrice float64, actor string) model.Booking {
	return model.Booking{
		ID:                uuid.NewString(),
		UserID:            accountID,
		RoomID:            c.RoomID,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		MaxNumberOfAdults: c.MaxNumberOfAdults,
		UserEmail:         strings.ToLower(strings.TrimSpace(c.UserEmail)),
		FirstName:         strings.TrimSpace(c.FirstName),
		LastName:          trimmed(c.LastName),
		Message:           trimmed(c.Message),
		PaymentStatus:     c.PaymentStatus,
		TotalPrice:        totalPrice,
		Status:            model.StatusPending,
		Metadata:          gModel.NewMetadata(actor),
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}

	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}

	return &v
}

type UpdateBookingRequest struct {
	Status        *model.Status        `db:"status"         json:"status"         validate:"omitempty,enum"`
	PaymentStatus *model.PaymentStatus `db:"payment_status" json:"payment_status" validate:"omitempty,enum"`
}

func (u UpdateBookingRequest) IsEmpty() bool {
	return u.Status == nil && u.PaymentStatus == nil
}

type RoomSummary struct {
	Name          string  `json:"name"`
	RoomNumber    *string `json:"room_number"`
	PricePerNight float64 `json:"price_per_night"`
}

type AccountSummary struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

type BookingResponse struct {
	ID                string          `json:"id"`
	UserID            *string         `json:"user_id"`
	RoomID            string          `json:"room_id"`
	CheckIn           string          `json:"check_in"`
	CheckOut          string          `json:"check_out"`
	Nights            int             `json:"nights"`
	MaxNumberOfAdults int             `json:"max_number_of_adults"`
	UserEmail         string          `json:"user_email"`
	FirstName         string          `json:"first_name"`
	LastName          *string         `json:"last_name"`
	Message           *string         `json:"message"`
	PaymentStatus     string          `json:"payment_status"`
	TotalPrice        float64         `json:"total_price"`
	Status            string          `json:"status"`
	Room              *RoomSummary    `json:"room,omitempty"`
	User              *AccountSummary `json:"user,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateFormat)
	r.Nights = pricing.Nights(model.CheckIn, model.CheckOut)
	r.MaxNumberOfAdults = model.MaxNumberOfAdults
	r.UserEmail = model.UserEmail
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Message = model.Message
	r.PaymentStatus = string(model.PaymentStatus)
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

func (r *BookingResponse) FromDetail(detail model.BookingDetail) {
	r.FromModel(detail.Booking)

	r.Room = &RoomSummary{
		Name:          detail.RoomName,
		RoomNumber:    detail.RoomNumber,
		PricePerNight: detail.RoomPricePerNight,
	}

	if detail.UserID != nil && detail.AccountEmail != nil {
		r.User = &AccountSummary{
			FirstName: detail.AccountFirstName,
			LastName:  detail.AccountLastName,
			Email:     detail.AccountEmail,
		}
	}
}

type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromDetail(mod)
	}
}

type ReceiptFile struct {
	FileName string
	Content  []byte
}
