// Package pricing derives the nightly count and total cost of a stay.
package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Nights returns the stay length rounded to the nearest whole day, or 0 when it is not positive.
// Callers reject checkOut <= checkIn before pricing.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(math.Round(float64(checkOut.Sub(checkIn)) / float64(day)))
	if nights <= 0 {
		return 0
	}

	return nights
}

func TotalPrice(nights int, pricePerNight float64) float64 {
	return float64(nights) * pricePerNight
}
