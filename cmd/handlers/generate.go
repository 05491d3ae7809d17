package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cappy/internal/config"
	"cappy/internal/core"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("86")).Padding(0, 1)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	ideaStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(12)
)

type generateOptions struct {
	location      string
	weather       string
	hour          int
	day           string
	season        string
	culture       string
	interests     []string
	count         int
	category      string
	maxDifficulty int
	jsonOutput    bool
}

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate icebreaker ideas",
		Long: `Generate icebreaker ideas for a context.

Fields not given as flags are taken from the current context (see 'cappy context').

Examples:
  # Three ideas for right here, right now
  cappy generate

  # Rainy evening in Rio, games only, as JSON
  cappy generate --location "Rio de Janeiro, RJ" --weather Rainy --hour 20 \
    --category game --count 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.location, "location", "", "where the conversation happens")
	cmd.Flags().StringVar(&opts.weather, "weather", "", "current weather, e.g. Sunny or Rainy")
	cmd.Flags().IntVar(&opts.hour, "hour", 0, "hour of day (0-23)")
	cmd.Flags().StringVar(&opts.day, "day", "", "day of week, e.g. Saturday")
	cmd.Flags().StringVar(&opts.season, "season", "", "season, e.g. Summer")
	cmd.Flags().StringVar(&opts.culture, "culture", "", "local culture")
	cmd.Flags().StringSliceVar(&opts.interests, "interests", nil, "comma-separated interests")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 3, "number of ideas (1-10)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "only ideas of this category")
	cmd.Flags().IntVar(&opts.maxDifficulty, "max-difficulty", 0, "highest difficulty to include (1-3, 0 for any)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the response as JSON")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	current, err := a.provider.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current context: %w", err)
	}

	req, err := buildRequest(cmd, current, opts)
	if err != nil {
		return err
	}

	resp, err := a.suggest.Execute(ctx, req)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	renderResponse(cmd.OutOrStdout(), resp)
	return nil
}

// buildRequest overlays the flags the user set on the current context.
func buildRequest(cmd *cobra.Command, current core.Context, opts generateOptions) (core.Request, error) {
	flags := cmd.Flags()

	if flags.Changed("location") {
		current.Location = opts.location
	}
	if flags.Changed("weather") {
		current.CurrentWeather = opts.weather
	}
	if flags.Changed("hour") {
		current.HourOfDay = opts.hour
	}
	if flags.Changed("day") {
		current.DayOfWeek = opts.day
	}
	if flags.Changed("season") {
		current.Season = opts.season
	}
	if flags.Changed("culture") {
		current.LocalCulture = opts.culture
	}
	if flags.Changed("interests") {
		current.UserInterests = opts.interests
	}

	req := core.Request{
		Context:        current,
		RequestedCount: opts.count,
		MaxDifficulty:  opts.maxDifficulty,
	}

	if opts.category != "" {
		category, ok := core.ParseCategory(opts.category)
		if !ok {
			return core.Request{}, fmt.Errorf("unknown category %q (see 'cappy categories')", opts.category)
		}
		req.PreferredCategory = category
	}

	return req, nil
}

// renderResponse prints ideas as bordered cards.
func renderResponse(w io.Writer, resp core.Response) {
	fmt.Fprintln(w, headerStyle.Render(resp.MotivationalMsg))
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%s · source: %s", resp.ContextUsed, resp.Source)))
	fmt.Fprintln(w)

	if len(resp.Ideas) == 0 {
		fmt.Fprintln(w, "No ideas match these filters. Try another category or a higher difficulty.")
		return
	}

	for _, idea := range resp.Ideas {
		fmt.Fprintln(w, ideaStyle.Render(renderIdea(idea)))
	}
}

func renderIdea(idea core.Idea) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(idea.Title))
	b.WriteString("  ")
	b.WriteString(categoryStyle.Render(string(idea.Category)))
	b.WriteString("\n")
	b.WriteString(idea.Description)
	b.WriteString("\n")

	meta := fmt.Sprintf("difficulty %s · %d min", difficultyDots(idea.Difficulty), idea.EstimatedMinutes)
	if len(idea.Tags) > 0 {
		meta += " · " + strings.Join(idea.Tags, ", ")
	}
	b.WriteString(metaStyle.Render(meta))

	return b.String()
}

func difficultyDots(difficulty int) string {
	difficulty = max(0, min(difficulty, 3))
	return strings.Repeat("●", difficulty) + strings.Repeat("○", 3-difficulty)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
