package pricing_test

import (
	"hotel/internal/domains/booking/pricing"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}

	return parsed
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{
			name:     "three nights",
			checkIn:  date(t, "2024-03-01"),
			checkOut: date(t, "2024-03-04"),
			expected: 3,
		},
		{
			name:     "single night",
			checkIn:  date(t, "2024-12-31"),
			checkOut: date(t, "2025-01-01"),
			expected: 1,
		},
		{
			name:     "equal dates floor at zero",
			checkIn:  date(t, "2024-03-01"),
			checkOut: date(t, "2024-03-01"),
			expected: 0,
		},
		{
			name:     "reversed dates floor at zero",
			checkIn:  date(t, "2024-03-04"),
			checkOut: date(t, "2024-03-01"),
			expected: 0,
		},
		{
			name:     "rounds a partial day up",
			checkIn:  date(t, "2024-03-01").Add(14 * time.Hour),
			checkOut: date(t, "2024-03-03").Add(2 * time.Hour),
			expected: 2,
		},
		{
			name:     "rounds a short stay down to zero",
			checkIn:  date(t, "2024-03-01").Add(10 * time.Hour),
			checkOut: date(t, "2024-03-01").Add(20 * time.Hour),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestNights_DaylightSavingShift(t *testing.T) {
	loc := mustLoad(t, "America/New_York")

	checkIn := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	checkOut := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)

	assert.Equal(t, 2, pricing.Nights(checkIn, checkOut))
}

func TestNights_AtLeastOneForAnyValidInterval(t *testing.T) {
	checkIn := date(t, "2024-01-01")

	for days := 1; days <= 400; days++ {
		checkOut := checkIn.AddDate(0, 0, days)
		nights := pricing.Nights(checkIn, checkOut)

		assert.GreaterOrEqual(t, nights, 1)
		assert.Equal(t, days, nights)
		assert.InDelta(t, float64(days)*129.5, pricing.TotalPrice(nights, 129.5), 1e-9)
	}
}

func TestTotalPrice(t *testing.T) {
	nights := pricing.Nights(date(t, "2024-03-01"), date(t, "2024-03-04"))

	assert.Equal(t, 3, nights)
	assert.InDelta(t, 300.0, pricing.TotalPrice(nights, 100), 1e-9)
	assert.InDelta(t, 0.0, pricing.TotalPrice(0, 100), 1e-9)
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	return loc
}
