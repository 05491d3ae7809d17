package handlers

import (
	"fmt"
	"os"

	"cappy/internal/config"
	"cappy/internal/logger"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cappy",
		Short: "Cappy suggests icebreakers that fit where you are and what is around you.",
		Long: `Cappy generates icebreaker ideas (questions, games, challenges, conversation
topics and interactive activities) for the current location, weather, time of day
and interests.

Ideas come from a generative model when an API key is configured, are cached per
context, and fall back to a curated catalog ranked by relevance otherwise.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cappy.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewCategoriesCmd())
	rootCmd.AddCommand(NewContextCmd())
	rootCmd.AddCommand(NewBrowseCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set, then sets up logging.
func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}
