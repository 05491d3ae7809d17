// Package prompts renders the instructions sent to the generative model.
package prompts

import (
	"fmt"
	"strings"

	"cappy/internal/core"
)

// Placeholders used for context fields that were not informed.
const (
	WeatherNotInformed = "weather not informed"
	DayNotInformed     = "day not informed"
	SeasonNotInformed  = "season not informed"
	CultureNotInformed = "culture not informed"
)

const outputContract = `MANDATORY RULES:
- Respond ONLY with valid JSON
- Do NOT add text, explanations or comments
- Do NOT use markdown or code fences
- Output only the JSON array, one object per idea, with exactly these fields:

[{
  "id": "1",
  "title": "Idea title",
  "description": "Detailed description",
  "category": "%s",
  "tags": ["tag1", "tag2"],
  "difficulty": 1,
  "estimatedMinutes": 3
}]

"difficulty" is an integer from 1 (easy) to 3 (hard) and "estimatedMinutes" is a positive integer.`

// BuildIdeasPrompt renders the instruction asking the model for count
// icebreaker ideas fitting ctx. When category is set the model is restricted to
// it, otherwise it is asked to vary across all categories.
func BuildIdeasPrompt(ctx core.Context, count int, category core.Category) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("You are a JSON generator. Generate %d icebreaker ideas to start a conversation.\n\n", count))

	prompt.WriteString("Context:\n")
	prompt.WriteString(fmt.Sprintf("- Location: %s\n", ctx.Location))
	prompt.WriteString(fmt.Sprintf("- Weather: %s\n", valueOr(ctx.CurrentWeather, WeatherNotInformed)))
	prompt.WriteString(fmt.Sprintf("- Hour of day: %dh\n", ctx.HourOfDay))
	prompt.WriteString(fmt.Sprintf("- Day of week: %s\n", valueOr(ctx.DayOfWeek, DayNotInformed)))
	prompt.WriteString(fmt.Sprintf("- Season: %s\n", valueOr(ctx.Season, SeasonNotInformed)))
	prompt.WriteString(fmt.Sprintf("- Local culture: %s\n", valueOr(ctx.LocalCulture, CultureNotInformed)))
	if len(ctx.UserInterests) > 0 {
		prompt.WriteString(fmt.Sprintf("- Interests: %s\n", strings.Join(ctx.UserInterests, ", ")))
	}
	prompt.WriteString("\n")

	example := core.CategoryQuestion
	if category != "" {
		example = category
		prompt.WriteString(fmt.Sprintf("Preferred category: %s. Generate only ideas of this category.\n\n", category))
	} else {
		prompt.WriteString(fmt.Sprintf("Generate varied ideas across all categories (%s).\n\n", joinCategories(core.Categories)))
	}

	prompt.WriteString(fmt.Sprintf(outputContract, example))

	return prompt.String()
}

func valueOr(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func joinCategories(categories []core.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
