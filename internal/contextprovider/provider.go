// Package contextprovider supplies the situational context for automatic
// suggestions.
package contextprovider

import (
	"context"
	"slices"
	"time"

	"cappy/internal/core"
)

// Defaults for the static provider.
const (
	DefaultLocation = "São Paulo, SP"
	DefaultWeather  = "Sunny"
	DefaultCulture  = "paulista"
)

// DefaultInterests are assumed when none are configured.
var DefaultInterests = []string{"technology", "music", "travel"}

// Provider returns the context of the current user.
type Provider interface {
	Current(ctx context.Context) (core.Context, error)
}

// Static returns a fixed location, weather, culture and interests, with the
// time-dependent fields taken from its clock.
type Static struct {
	Location  string
	Weather   string
	Culture   string
	Interests []string
	Now       func() time.Time
}

// NewStatic returns a Static provider filled with the defaults.
func NewStatic() *Static {
	return &Static{
		Location:  DefaultLocation,
		Weather:   DefaultWeather,
		Culture:   DefaultCulture,
		Interests: slices.Clone(DefaultInterests),
		Now:       time.Now,
	}
}

// Current implements Provider.
func (s *Static) Current(ctx context.Context) (core.Context, error) {
	if err := ctx.Err(); err != nil {
		return core.Context{}, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	location := s.Location
	if location == "" {
		location = DefaultLocation
	}

	return core.Context{
		Location:       location,
		CurrentWeather: s.Weather,
		HourOfDay:      now.Hour(),
		DayOfWeek:      now.Weekday().String(),
		Season:         SeasonFor(now.Month()),
		UserInterests:  slices.Clone(s.Interests),
		LocalCulture:   s.Culture,
	}, nil
}

// SeasonFor names the southern-hemisphere season of month.
func SeasonFor(month time.Month) string {
	switch month {
	case time.December, time.January, time.February:
		return "Summer"
	case time.March, time.April, time.May:
		return "Autumn"
	case time.June, time.July, time.August:
		return "Winter"
	case time.September, time.October, time.November:
		return "Spring"
	default:
		return "Unknown"
	}
}
