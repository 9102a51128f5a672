package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terrascope/invest-cli/internal/config"
	"github.com/terrascope/invest-cli/internal/dataset"
)

var cfg *config.Config

var datasetPath string

var rootCmd = &cobra.Command{
	Use:   "invest-cli",
	Short: "Investment scoring for French cities and districts",
	Long:  "Scores cities and IRIS districts from the territorial dataset (demographics, housing, DVF transactions), ranks them, flags districts to watch, and exports or serves the results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if datasetPath != "" {
			cfg.Dataset.Path = datasetPath
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// openDataset loads and indexes the dataset configured for this run.
func openDataset() (*dataset.Provider, error) {
	return dataset.Load(cfg.Dataset.Path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset file path (default from config)")
}
