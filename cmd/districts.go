package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terrascope/invest-cli/internal/export"
	"github.com/terrascope/invest-cli/internal/scoring"
)

var districtsCmd = &cobra.Command{
	Use:   "districts <ville>",
	Short: "Rank a city's districts by investment score",
	Long:  "Scores every IRIS district of a city and prints the ranking. District scores are weighted by the city's own score, so 85/100 in a weak city does not read like 85/100 in Lyon.",
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
			return eris.Errorf("districts: no city matches %q", args[0])
		}
		if len(city.Districts) == 0 {
			fmt.Printf("Aucun quartier pour %s.\n", city.Name)
			return nil
		}

		cityScore := scoring.ScoreCity(city)
		ranked := scoring.TopDistricts(city.Districts, limit, cityScore.Total)

		zap.L().Info("district scoring complete",
			zap.String("city", city.Name),
			zap.Int("city_score", cityScore.Total),
			zap.Int("districts", len(ranked)),
		)

		if format == "table" && outputPath == "" {
			fmt.Printf("%s (score ville: %d/100)\n\n", city.Name, cityScore.Total)
			printDistrictTable(ranked)
			return nil
		}

		rows := make([][]string, 0, len(ranked))
		for _, r := range ranked {
			rows = append(rows, export.DistrictRow(r))
		}
		return writeRows(format, outputPath, "Quartiers", export.DistrictHeader, rows, ranked)
	},
}

func printDistrictTable(ranked []scoring.RankedDistrict) {
	fmt.Printf("%-5s %-40s %-12s %6s %7s %7s\n",
		"Rang", "Quartier", "IRIS", "Score", "Locatif", "Démo")
	fmt.Println(strings.Repeat("-", 82))
	for _, r := range ranked {
		name := r.District.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Printf("%-5d %-40s %-12s %6d %7.1f %7.1f\n",
			r.Score.Rank, name, r.District.IRISID,
			r.Score.Total, r.Score.RentalPotential, r.Score.Demographics)
	}
}

func init() {
	districtsCmd.Flags().Int("limit", 0, "max districts to return (0 = all)")
	districtsCmd.Flags().String("format", "table", "output format: table, csv, json, xlsx")
	districtsCmd.Flags().String("output", "", "output file path (default stdout)")
	rootCmd.AddCommand(districtsCmd)
}
