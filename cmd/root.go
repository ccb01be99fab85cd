package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrijwal/f-t-landsuitability/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "landsuit",
	Short: "Fast-track land suitability classification",
	Long:  "Classifies co-registered climate, terrain and soil rasters into three-tier crop suitability scores and overlays them into a combined suitability map.",
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
