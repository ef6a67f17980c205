package dto_test

import (
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](value T) *T {
	return &value
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:            "0b9a7c52-3f0e-4a55-9a4f-7c8d2a1e6b10",
		CheckIn:           "2024-03-01",
		CheckOut:          "2024-03-04",
		MaxNumberOfAdults: 2,
		UserEmail:         "ada@example.com",
		FirstName:         "Ada",
		PaymentStatus:     model.PaymentPayAtHotel,
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.CreateBookingRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*dto.CreateBookingRequest) {}},
		{name: "missing room", mutate: func(req *dto.CreateBookingRequest) { req.RoomID = "" }, wantErr: true},
		{name: "room is not an id", mutate: func(req *dto.CreateBookingRequest) { req.RoomID = "suite-1" }, wantErr: true},
		{name: "missing check in", mutate: func(req *dto.CreateBookingRequest) { req.CheckIn = "" }, wantErr: true},
		{name: "party size below one", mutate: func(req *dto.CreateBookingRequest) { req.MaxNumberOfAdults = 0 }, wantErr: true},
		{name: "invalid email", mutate: func(req *dto.CreateBookingRequest) { req.UserEmail = "ada" }, wantErr: true},
		{name: "missing first name", mutate: func(req *dto.CreateBookingRequest) { req.FirstName = "" }, wantErr: true},
		{name: "unknown payment status", mutate: func(req *dto.CreateBookingRequest) { req.PaymentStatus = "card" }, wantErr: true},
		{name: "user id must be an id", mutate: func(req *dto.CreateBookingRequest) { req.UserID = ptr("ada") }, wantErr: true},
		{name: "client price is ignored by validation", mutate: func(req *dto.CreateBookingRequest) { req.TotalPrice = ptr(-1.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		nights   float64
		wantErr  bool
	}{
		{name: "date only", checkIn: "2024-03-01", checkOut: "2024-03-04", nights: 3},
		{name: "rfc3339", checkIn: "2024-03-01T14:00:00Z", checkOut: "2024-03-02T11:00:00Z", nights: 21.0 / 24},
		{name: "surrounding spaces", checkIn: " 2024-03-01 ", checkOut: "2024-03-02", nights: 1},
		{name: "bad check in", checkIn: "03/01/2024", checkOut: "2024-03-02", wantErr: true},
		{name: "bad check out", checkIn: "2024-03-01", checkOut: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.CheckIn = tt.checkIn
			req.CheckOut = tt.checkOut

			checkIn, checkOut, err := req.ParseDates()
			if tt.wantErr {
				assert.ErrorIs(t, err, dto.ErrInvalidDate)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.nights, checkOut.Sub(checkIn).Hours()/24, 1e-9)
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := validRequest()
	req.UserEmail = "  Ada@Example.COM "
	req.LastName = ptr(" Lovelace ")
	req.Message = ptr("   ")

	checkIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)
	account := "7d1c0b4e-9a1f-4f7e-8a55-3c2b1d0e9f88"

	first := req.ToModel(&account, checkIn, checkOut, 300, account)
	second := req.ToModel(&account, checkIn, checkOut, 300, account)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "ada@example.com", first.UserEmail)
	assert.Equal(t, "Lovelace", *first.LastName)
	assert.Nil(t, first.Message)
	assert.Equal(t, model.StatusPending, first.Status)
	assert.Equal(t, &account, first.UserID)
	assert.InDelta(t, 300.0, first.TotalPrice, 1e-9)
	assert.Equal(t, account, first.CreatedBy)
}

func TestBookingResponse_FromDetail(t *testing.T) {
	checkIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	booking := model.Booking{
		ID:            "b-1",
		RoomID:        "r-1",
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 3),
		PaymentStatus: model.PaymentPaid,
		Status:        model.StatusConfirmed,
		TotalPrice:    300,
	}

	t.Run("guest booking has no account block", func(t *testing.T) {
		var res dto.BookingResponse
		res.FromDetail(model.BookingDetail{Booking: booking, RoomName: "Deluxe", RoomPricePerNight: 100})

		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, "paid", res.PaymentStatus)
		assert.Equal(t, "confirmed", res.Status)
		require.NotNil(t, res.Room)
		assert.Equal(t, "Deluxe", res.Room.Name)
		assert.Nil(t, res.User)
	})

	t.Run("linked account is inlined", func(t *testing.T) {
		linked := booking
		linked.UserID = ptr("u-1")

		var res dto.BookingResponse
		res.FromDetail(model.BookingDetail{Booking: linked, AccountFirstName: ptr("Ada"), AccountEmail: ptr("ada@example.com")})

		require.NotNil(t, res.User)
		assert.Equal(t, "Ada", *res.User.FirstName)
	})
}

func TestUpdateBookingRequest(t *testing.T) {
	assert.True(t, dto.UpdateBookingRequest{}.IsEmpty())

	status := model.Status("archived")
	req := dto.UpdateBookingRequest{Status: &status}
	assert.False(t, req.IsEmpty())
	assert.Error(t, validator.ValidateStruct(&req))

	confirmed := model.StatusConfirmed
	req.Status = &confirmed
	assert.NoError(t, validator.ValidateStruct(&req))
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	var res dto.GetBookingsResponse
	res.FromModels([]model.BookingDetail{{Booking: model.Booking{ID: "a"}}, {Booking: model.Booking{ID: "b"}}}, 25, 10)

	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 25, res.TotalData)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, "a", res.Bookings[0].ID)
}
