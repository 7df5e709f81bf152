package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var appLocation atomic.Pointer[time.Location]

func init() {
	if err := Init(config.Get().App.Timezone); err != nil {
		log.Error().Err(err).Msg("Failed to load timezone, falling back to UTC")
	}
}

// Init sets the application zone. An empty name selects UTC; an unknown one leaves UTC in place and returns an error.
func Init(name string) error {
	if name == "" {
		name = defaultZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		appLocation.Store(time.UTC)

		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	appLocation.Store(loc)
	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return nil
}

// GetLocation returns the application zone, UTC until Init succeeds.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value in the application zone when the layout carries no offset.
func Parse(layout, value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(layout, value, GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
	}

	return parsed, nil
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
