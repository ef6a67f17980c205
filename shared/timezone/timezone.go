// Package timezone pins every stored and rendered time to the hotel's configured IANA zone (APP_TIMEZONE).
package timezone

import (
	"fmt"
	"hotel/config"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var (
	current  atomic.Pointer[time.Location]
	loadOnce sync.Once
)

func location() *time.Location {
	loadOnce.Do(func() {
		if current.Load() != nil {
			return
		}

		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Str("timezone", fallbackZone).Msg("no timezone configured")
			name = fallbackZone
		}

		if err := Use(name); err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, falling back to UTC")
			current.Store(time.UTC)
		}
	})

	return current.Load()
}

// Use switches the application zone. name must be an IANA name such as "Asia/Jakarta".
func Use(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load location %q: %w", name, err)
	}

	current.Store(loc)

	return nil
}

func Location() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

func In(t time.Time) time.Time {
	return t.In(location())
}

// Parse reads value in the application zone unless the layout carries its own offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return In(t).Format(layout)
}
