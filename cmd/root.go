package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/places-cli/internal/config"
)

var (
	cfg          *config.Config
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "places-cli",
	Short: "Search places and geocode addresses",
	Long:  "Queries the Places and Geocoding web services, follows page tokens, attaches addresses to places and does great-circle arithmetic offline.",
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
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "output format: json, yaml or geojson")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
