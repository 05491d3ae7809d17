package relevance

import (
	"testing"

	"cappy/internal/core"
)

func TestTimeOfDay(t *testing.T) {
	tests := map[int]string{
		0:  PeriodLateNight,
		5:  PeriodLateNight,
		6:  PeriodMorning,
		11: PeriodMorning,
		12: PeriodAfternoon,
		17: PeriodAfternoon,
		18: PeriodEvening,
		21: PeriodEvening,
		22: PeriodLateNight,
		23: PeriodLateNight,
	}
	for hour, want := range tests {
		if got := TimeOfDay(hour); got != want {
			t.Errorf("TimeOfDay(%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestScoreBaseWithoutOptionalFields(t *testing.T) {
	ideas := []core.Idea{
		{ID: "1", Tags: []string{"creative", "fun"}},
		{ID: "2", Tags: nil},
		{ID: "3", Tags: []string{"weather", "rain", "music"}},
	}
	ctx := core.Context{Location: "Lisbon", HourOfDay: 14}

	for _, idea := range ideas {
		if got := Score(idea, ctx); got != BaseScore {
			t.Errorf("Score(%s) = %d, want %d", idea.ID, got, BaseScore)
		}
	}
}

func TestScoreInterestsCountPerTag(t *testing.T) {
	idea := core.Idea{Tags: []string{"Technology", "tech-talk", "music", "food"}}
	ctx := core.Context{HourOfDay: 3, UserInterests: []string{"tech", "MUSIC"}}

	// three tags match an interest
	want := BaseScore + 3*InterestPoints
	if got := Score(idea, ctx); got != want {
		t.Errorf("Score = %d, want %d", got, want)
	}
}

func TestScoreIgnoresEmptyInterests(t *testing.T) {
	idea := core.Idea{Tags: []string{"anything"}}
	ctx := core.Context{HourOfDay: 3, UserInterests: []string{"", "  "}}

	if got := Score(idea, ctx); got != BaseScore {
		t.Errorf("Score = %d, want %d", got, BaseScore)
	}
}

func TestScoreCultureWeatherPeriod(t *testing.T) {
	idea := core.Idea{Tags: []string{"paulista", "sunny-day", "morning", "Paulista food"}}
	ctx := core.Context{
		HourOfDay:      8,
		CurrentWeather: "Sunny",
		LocalCulture:   "PAULISTA",
	}

	want := BaseScore + CulturePoints + WeatherPoints + PeriodPoints
	if got := Score(idea, ctx); got != want {
		t.Errorf("Score = %d, want %d", got, want)
	}
}

func TestScorePeriodOnlyForMatchingBucket(t *testing.T) {
	idea := core.Idea{Tags: []string{"evening"}}

	if got := Score(idea, core.Context{HourOfDay: 19}); got != BaseScore+PeriodPoints {
		t.Errorf("Expected period bonus at 19h, got %d", got)
	}
	if got := Score(idea, core.Context{HourOfDay: 9}); got != BaseScore {
		t.Errorf("Expected no period bonus at 9h, got %d", got)
	}
}

func TestRankSortsStable(t *testing.T) {
	ideas := []core.Idea{
		{ID: "a", Tags: []string{"x"}},
		{ID: "b", Tags: []string{"music"}},
		{ID: "c", Tags: []string{"y"}},
		{ID: "d", Tags: []string{"music", "rain"}},
	}
	ctx := core.Context{HourOfDay: 2, UserInterests: []string{"music"}, CurrentWeather: "rain"}

	ranked := Rank(ideas, ctx)
	if len(ranked) != len(ideas) {
		t.Fatalf("Expected %d ranked ideas, got %d", len(ideas), len(ranked))
	}

	var order []string
	for _, r := range ranked {
		order = append(order, r.Idea.ID)
	}
	want := []string{"d", "b", "a", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Rank order = %v, want %v", order, want)
		}
	}
	if ranked[0].Score != BaseScore+InterestPoints+WeatherPoints {
		t.Errorf("Unexpected top score %d", ranked[0].Score)
	}
}

func TestScoreHasNoSideEffects(t *testing.T) {
	idea := core.Idea{Tags: []string{"MiXeD"}}
	_ = Score(idea, core.Context{UserInterests: []string{"mixed"}})

	if idea.Tags[0] != "MiXeD" {
		t.Errorf("Score mutated tags: %v", idea.Tags)
	}
}
