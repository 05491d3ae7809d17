package handlers

import (
	"fmt"
	"io"
	"strings"

	"cappy/internal/config"
	"cappy/internal/contextprovider"
	"cappy/internal/core"

	"github.com/spf13/cobra"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the icebreaker categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), core.Categories)
			}
			for _, c := range core.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the categories as JSON")
	return cmd
}

// NewContextCmd creates the context command
func NewContextCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Show the context used for automatic suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := contextFromConfig(config.Get().Context).Current(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get current context: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), current)
			}
			renderContext(cmd.OutOrStdout(), current)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the context as JSON")
	return cmd
}

// contextFromConfig builds the static provider, keeping defaults for fields
// the configuration leaves empty.
func contextFromConfig(cfg config.Context) *contextprovider.Static {
	p := contextprovider.NewStatic()
	if cfg.Location != "" {
		p.Location = cfg.Location
	}
	if cfg.Weather != "" {
		p.Weather = cfg.Weather
	}
	if cfg.Culture != "" {
		p.Culture = cfg.Culture
	}
	if len(cfg.Interests) > 0 {
		p.Interests = cfg.Interests
	}
	return p
}

func renderContext(w io.Writer, c core.Context) {
	rows := [][2]string{
		{"Location", c.Location},
		{"Weather", c.CurrentWeather},
		{"Hour", fmt.Sprintf("%dh", c.HourOfDay)},
		{"Day", c.DayOfWeek},
		{"Season", c.Season},
		{"Culture", c.LocalCulture},
		{"Interests", strings.Join(c.UserInterests, ", ")},
	}
	for _, row := range rows {
		fmt.Fprintln(w, labelStyle.Render(row[0])+row[1])
	}
}
