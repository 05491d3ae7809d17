package relevance

import (
	"sort"
	"strings"

	"cappy/internal/core"
)

// Point values for each matching rule.
const (
	BaseScore      = 1
	InterestPoints = 3
	CulturePoints  = 2
	WeatherPoints  = 2
	PeriodPoints   = 2
)

// Time-of-day labels matched against idea tags.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodLateNight = "late-night"
)

// TimeOfDay buckets an hour (0-23) into a period label.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18 && hour < 22:
		return PeriodEvening
	default:
		return PeriodLateNight
	}
}

// Score rates how well an idea fits a context. Every idea starts at BaseScore.
// Each tag matching one of the user's interests adds InterestPoints; a tag
// matching the local culture, the current weather or the period of the day adds
// the corresponding points once. Matching is case-insensitive substring search
// of the context value inside the tag.
func Score(idea core.Idea, ctx core.Context) int {
	tags := make([]string, len(idea.Tags))
	for i, tag := range idea.Tags {
		tags[i] = strings.ToLower(tag)
	}

	score := BaseScore

	interests := lowerNonEmpty(ctx.UserInterests)
	if len(interests) > 0 {
		for _, tag := range tags {
			if containsAny(tag, interests) {
				score += InterestPoints
			}
		}
	}

	if anyTagContains(tags, ctx.LocalCulture) {
		score += CulturePoints
	}
	if anyTagContains(tags, ctx.CurrentWeather) {
		score += WeatherPoints
	}
	if anyTagContains(tags, TimeOfDay(ctx.HourOfDay)) {
		score += PeriodPoints
	}

	return score
}

// Scored pairs an idea with its relevance score.
type Scored struct {
	Idea  core.Idea
	Score int
}

// Rank scores ideas against ctx, drops anything scoring zero and sorts the rest
// by descending score. Ties keep their input order.
func Rank(ideas []core.Idea, ctx core.Context) []Scored {
	ranked := make([]Scored, 0, len(ideas))
	for _, idea := range ideas {
		if s := Score(idea, ctx); s > 0 {
			ranked = append(ranked, Scored{Idea: idea, Score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func anyTagContains(tags []string, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return false
	}
	for _, tag := range tags {
		if strings.Contains(tag, value) {
			return true
		}
	}
	return false
}

func containsAny(tag string, values []string) bool {
	for _, v := range values {
		if strings.Contains(tag, v) {
			return true
		}
	}
	return false
}

func lowerNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
