// Package summary assembles the ordered label/value rows shared by the receipt and the booking emails.
package summary

import (
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/pricing"
	"hotel/shared/timezone"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "Mon Jan 02 2006"

const (
	LabelClientName    = "Client Name"
	LabelClientEmail   = "Client Email"
	LabelRoomName      = "Room Name"
	LabelCheckIn       = "Check-In Date"
	LabelCheckOut      = "Check-Out Date"
	LabelNights        = "Nights"
	LabelAdults        = "Number of Adults"
	LabelPaymentStatus = "Payment Status"
	LabelTotalPrice    = "Total Price"
	LabelStatus        = "Status"
)

type Field struct {
	Label string
	Value string
}

type Formatter struct {
	printer  *message.Printer
	currency string
}

func New(currency string) Formatter {
	return Formatter{
		printer:  message.NewPrinter(language.English),
		currency: currency,
	}
}

// Price renders an amount with the currency symbol, thousands separators and two decimals.
func (f Formatter) Price(amount float64) string {
	return f.currency + f.printer.Sprintf("%.2f", amount)
}

func (f Formatter) Date(t time.Time) string {
	return timezone.Format(t, dateLayout)
}

// Fields returns the booking rows in display order.
func (f Formatter) Fields(detail model.BookingDetail) []Field {
	booking := detail.Booking

	return []Field{
		{Label: LabelClientName, Value: booking.FullName()},
		{Label: LabelClientEmail, Value: booking.UserEmail},
		{Label: LabelRoomName, Value: detail.RoomName},
		{Label: LabelCheckIn, Value: f.Date(booking.CheckIn)},
		{Label: LabelCheckOut, Value: f.Date(booking.CheckOut)},
		{Label: LabelNights, Value: strconv.Itoa(pricing.Nights(booking.CheckIn, booking.CheckOut))},
		{Label: LabelAdults, Value: strconv.Itoa(booking.MaxNumberOfAdults)},
		{Label: LabelPaymentStatus, Value: string(booking.PaymentStatus)},
		{Label: LabelTotalPrice, Value: f.Price(booking.TotalPrice)},
		{Label: LabelStatus, Value: string(booking.Status)},
	}
}
