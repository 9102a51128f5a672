package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terrascope/invest-cli/internal/export"
	"github.com/terrascope/invest-cli/internal/scoring"
)

var watchCmd = &cobra.Command{
	Use:   "watch <ville>",
	Short: "List a city's districts to watch before investing",
	Long:  "Flags districts matching at least two risk criteria (high vacancy, low score, tiny population, rental-heavy stock, low pressure, aging population, weak stability), with the reasons spelled out.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		provider, err := openDataset()
		if err != nil {
			return err
		}

		city := provider.Resolve(args[0])
		if city == nil {
			return eris.Errorf("watch: no city matches %q", args[0])
		}

		if limit == 0 {
			limit = cfg.Export.WatchLimit
		}

		cityScore := scoring.ScoreCity(city)
		flagged := scoring.DistrictsToWatch(city.Districts, limit, cityScore.Total)

		zap.L().Info("watch list built",
			zap.String("city", city.Name),
			zap.Int("flagged", len(flagged)),
		)

		if format == "json" {
			if outputPath != "" {
				return export.WriteJSONFile(outputPath, flagged)
			}
			return export.WriteJSON(os.Stdout, flagged)
		}

		fmt.Printf("Quartiers à surveiller - %s (score ville: %d/100)\n\n", city.Name, cityScore.Total)
		for _, f := range flagged {
			fmt.Printf("%s (%s) - score %d, %d critère(s)\n",
				f.District.Name, f.District.IRISID, f.Score.Total, f.CriteriaCount)
			for _, reason := range f.Reasons {
				fmt.Printf("  - %s: %s\n", reason.Label, reason.Description)
			}
			fmt.Println(strings.Repeat("-", 60))
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().Int("limit", 0, "max districts to return (default from config)")
	watchCmd.Flags().String("format", "text", "output format: text, json")
	watchCmd.Flags().String("output", "", "output file path for json (default stdout)")
	rootCmd.AddCommand(watchCmd)
}
