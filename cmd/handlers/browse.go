package handlers

import (
	"context"

	"cappy/internal/config"
	"cappy/internal/core"
	"cappy/internal/suggest"
	"cappy/internal/tui"

	"github.com/spf13/cobra"
)

// NewBrowseCmd creates the interactive browser command
func NewBrowseCmd() *cobra.Command {
	var (
		count         int
		category      string
		maxDifficulty int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse ideas for the current context interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req := suggest.AutoRequest{RequestedCount: count, MaxDifficulty: maxDifficulty}
			if category != "" {
				if err := req.PreferredCategory.UnmarshalText([]byte(category)); err != nil {
					return err
				}
			}

			a, err := newApp(ctx, config.Get())
			if err != nil {
				return err
			}
			defer a.Close()

			return tui.Run(ctx, func(ctx context.Context) (core.Response, error) {
				return a.suggest.ExecuteAuto(ctx, req)
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of ideas (1-10)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only ideas of this category")
	cmd.Flags().IntVar(&maxDifficulty, "max-difficulty", 0, "highest difficulty to include (1-3, 0 for any)")

	return cmd
}
