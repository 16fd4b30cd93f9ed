package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "quote-intel",
	Short: "Vendor quotation scoring and comparison engine",
	Long:  "Normalizes raw vendor quotations, computes Nexus Trust Scores across cost, quality, speed, and risk, and ranks competing vendors with negotiation guidance.",
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
