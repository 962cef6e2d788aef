package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/djraval/redwireless-scraper/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "redwireless-scraper",
	Short: "Harvests Red Wireless partner pricing",
	Long:  "Enumerates the company search space, enriches companies into pricing groups, collects per-group phone pricing, and answers price-comparison queries over the harvested corpus.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
