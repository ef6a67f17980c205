package model_test

import (
	"hotel/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	for _, status := range []model.Status{model.StatusPending, model.StatusConfirmed, model.StatusCancelled} {
		assert.True(t, status.IsValid(), status)
	}

	assert.False(t, model.Status("completed").IsValid())
	assert.False(t, model.Status("").IsValid())
}

func TestPaymentStatus_IsValid(t *testing.T) {
	assert.True(t, model.PaymentPayAtHotel.IsValid())
	assert.True(t, model.PaymentPaid.IsValid())
	assert.False(t, model.PaymentStatus("card").IsValid())
}

func TestBookingDetail_GetJoinQuery(t *testing.T) {
	query := model.BookingDetail{}.GetJoinQuery()

	assert.Equal(t, "JOIN rooms ON rooms.id = bookings.room_id LEFT JOIN users ON users.id = bookings.user_id", query)
}

func TestBooking_FullName(t *testing.T) {
	lovelace := "Lovelace"
	empty := ""

	assert.Equal(t, "Ada Lovelace", model.Booking{FirstName: "Ada", LastName: &lovelace}.FullName())
	assert.Equal(t, "Ada", model.Booking{FirstName: "Ada", LastName: &empty}.FullName())
	assert.Equal(t, "Ada", model.Booking{FirstName: "Ada"}.FullName())
}
