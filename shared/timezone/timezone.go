package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"pms/config"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var appLocation atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone

	loc, err := Load(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, falling back to UTC")
	}

	SetLocation(loc)

	log.Info().Str("timezone", GetLocation().String()).Msg("application timezone initialized")
}

// Load resolves an IANA timezone name. An empty name is UTC. On error the returned
// location is UTC so callers can keep going.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("unknown timezone %q, use names like Asia/Jakarta: %w", name, err)
	}

	return loc, nil
}

// SetLocation replaces the application timezone. A nil location resets it to UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	appLocation.Store(loc)
}

// GetLocation returns the hotel's timezone.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current instant in the hotel's timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime expresses t in the hotel's timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
