package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kephothoX/SokoAnalyst/internal/config"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sokoanalyst",
		Short: "SokoAnalyst - AI-Powered Financial Market Analysis",
		Long: `SokoAnalyst is a financial market analysis system powered by Large Language Models.
It covers global equities, crypto, forex, commodities, and emerging markets with
real-time data, technical indicators, sentiment scoring, and cited market intelligence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAskCmd(cfg))
	rootCmd.AddCommand(newQuoteCmd(cfg))
	rootCmd.AddCommand(newTechnicalCmd(cfg))
	rootCmd.AddCommand(newSentimentCmd(cfg))
	rootCmd.AddCommand(newNewsCmd(cfg))
	rootCmd.AddCommand(newHistoryCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("SokoAnalyst v%s\n", version)
			fmt.Println("AI-Powered Financial Market Analysis")
		},
	}
}
