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

var scoreCmd = &cobra.Command{
	Use:   "score [ville]",
	Short: "Rank cities by investment score, or score one city",
	Long:  "Scores every city in the dataset on a comparative 0-100 scale and prints the ranking. With a city argument (INSEE code, slug or name), prints that city's score breakdown and rank.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		provider, err := openDataset()
		if err != nil {
			return err
		}

		// Single-city mode.
		if len(args) == 1 {
			city := provider.Resolve(args[0])
			if city == nil {
				return eris.Errorf("score: no city matches %q", args[0])
			}
			score := scoring.CityScoreWithRank(city, provider.Cities())
			printCityScore(city.Name, score, len(provider.Cities()))
			return nil
		}

		ranked := scoring.TopCities(provider.Cities(), limit)
		zap.L().Info("city scoring complete",
			zap.Int("ranked", len(ranked)),
			zap.Int("returned", len(ranked)),
		)

		if format == "table" && outputPath == "" {
			printCityTable(ranked)
			printCitySummary(ranked)
			return nil
		}

		rows := make([][]string, 0, len(ranked))
		for _, r := range ranked {
			rows = append(rows, export.CityRow(r))
		}
		return writeRows(format, outputPath, "Villes", export.CityHeader, rows, ranked)
	},
}

func printCityScore(name string, score scoring.CityScore, total int) {
	fmt.Printf("Ville:          %s\n", name)
	fmt.Printf("Rang:           %d / %d\n", score.Rank, total)
	fmt.Printf("Score:          %d / 100\n", score.Total)
	fmt.Println("\nDétail:")
	fmt.Printf("  %-22s %5.1f / 25\n", "Accessibilité marché", score.MarketAccessibility)
	fmt.Printf("  %-22s %5.1f / 20\n", "Dynamisme marché", score.MarketDynamism)
	fmt.Printf("  %-22s %5.1f / 25\n", "Potentiel locatif", score.RentalPotential)
	fmt.Printf("  %-22s %5.1f / 20\n", "Démographie", score.Demographics)
	fmt.Printf("  %-22s %5.1f / 10\n", "Volume & liquidité", score.VolumeLiquidity)
}

func printCityTable(ranked []scoring.RankedCity) {
	fmt.Printf("%-5s %-30s %-10s %-25s %6s\n", "Rang", "Ville", "INSEE", "Département", "Score")
	fmt.Println(strings.Repeat("-", 80))
	for _, r := range ranked {
		name := r.City.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Printf("%-5d %-30s %-10s %-25s %6d\n",
			r.Score.Rank, name, r.City.INSEECode, r.City.Department.Name, r.Score.Total)
	}
}

func printCitySummary(ranked []scoring.RankedCity) {
	if len(ranked) == 0 {
		fmt.Println("No results.")
		return
	}
	var sum int
	best, worst := ranked[0].Score.Total, ranked[0].Score.Total
	for _, r := range ranked {
		sum += r.Score.Total
		if r.Score.Total > best {
			best = r.Score.Total
		}
		if r.Score.Total < worst {
			worst = r.Score.Total
		}
	}
	fmt.Printf("\n--- Résumé ---\n")
	fmt.Printf("Villes notées: %d\n", len(ranked))
	fmt.Printf("Scores:        %d - %d\n", worst, best)
	fmt.Printf("Moyenne:       %.1f\n", float64(sum)/float64(len(ranked)))
}

// writeRows renders tabular results in the requested format. Table and
// csv default to stdout; xlsx requires --output.
func writeRows(format, outputPath, sheet string, header []string, rows [][]string, v any) error {
	switch format {
	case "csv":
		w, closeFn, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeFn()
		return export.WriteCSV(w, header, rows)
	case "json":
		if outputPath != "" {
			return export.WriteJSONFile(outputPath, v)
		}
		return export.WriteJSON(os.Stdout, v)
	case "xlsx":
		if outputPath == "" {
			return eris.New("xlsx output requires --output")
		}
		return export.WriteXLSX(outputPath, sheet, header, rows)
	case "table":
		return eris.New("table format writes to stdout only")
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { f.Close() }, nil //nolint:errcheck
}

func init() {
	scoreCmd.Flags().Int("limit", 0, "max cities to return (0 = all)")
	scoreCmd.Flags().String("format", "table", "output format: table, csv, json, xlsx")
	scoreCmd.Flags().String("output", "", "output file path (default stdout)")
	rootCmd.AddCommand(scoreCmd)
}
