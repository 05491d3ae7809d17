package contextprovider

import (
	"context"
	"slices"
	"testing"
	"time"
)

func TestSeasonFor(t *testing.T) {
	tests := map[time.Month]string{
		time.January:   "Summer",
		time.February:  "Summer",
		time.March:     "Autumn",
		time.May:       "Autumn",
		time.June:      "Winter",
		time.August:    "Winter",
		time.September: "Spring",
		time.November:  "Spring",
		time.December:  "Summer",
		time.Month(13): "Unknown",
	}

	for month, want := range tests {
		if got := SeasonFor(month); got != want {
			t.Errorf("SeasonFor(%d) = %s, want %s", month, got, want)
		}
	}
}

func TestStaticCurrent(t *testing.T) {
	p := NewStatic()
	p.Now = func() time.Time { return time.Date(2025, time.July, 4, 21, 30, 0, 0, time.UTC) }

	ctx, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}

	if ctx.Location != DefaultLocation || ctx.CurrentWeather != DefaultWeather || ctx.LocalCulture != DefaultCulture {
		t.Errorf("Unexpected static fields: %+v", ctx)
	}
	if ctx.HourOfDay != 21 || ctx.DayOfWeek != "Friday" || ctx.Season != "Winter" {
		t.Errorf("Unexpected clock fields: hour=%d day=%s season=%s", ctx.HourOfDay, ctx.DayOfWeek, ctx.Season)
	}
	if !slices.Equal(ctx.UserInterests, DefaultInterests) {
		t.Errorf("Unexpected interests: %v", ctx.UserInterests)
	}

	ctx.UserInterests[0] = "mutated"
	if p.Interests[0] == "mutated" || DefaultInterests[0] == "mutated" {
		t.Error("Returned context shares the provider's interests")
	}
}

func TestStaticCurrentConfigured(t *testing.T) {
	p := &Static{
		Weather:   "Rainy",
		Culture:   "carioca",
		Interests: []string{"surf"},
		Now:       func() time.Time { return time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC) },
	}

	ctx, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if ctx.Location != DefaultLocation {
		t.Errorf("Expected default location, got %q", ctx.Location)
	}
	if ctx.CurrentWeather != "Rainy" || ctx.LocalCulture != "carioca" || ctx.Season != "Summer" || ctx.HourOfDay != 8 {
		t.Errorf("Unexpected context: %+v", ctx)
	}
}

func TestStaticCurrentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewStatic().Current(ctx); err == nil {
		t.Error("Expected error for canceled context")
	}
}
