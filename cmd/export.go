package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terrascope/invest-cli/internal/export"
	"github.com/terrascope/invest-cli/internal/scoring"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export scored reports for the whole dataset",
	Long:  "Builds the full per-city report (score, district ranking, watch list) for every city and writes it to the output directory. Formats: json (one file per city plus a ranking index), xlsx (ranking workbook), geojson (all districts as a FeatureCollection).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := args[0]
		format, _ := cmd.Flags().GetString("format")
		workers, _ := cmd.Flags().GetInt("workers")
		watchLimit, _ := cmd.Flags().GetInt("watch-limit")

		if format == "" {
			format = cfg.Export.Format
		}
		if workers == 0 {
			workers = cfg.Export.Workers
		}
		if watchLimit == 0 {
			watchLimit = cfg.Export.WatchLimit
		}

		provider, err := openDataset()
		if err != nil {
			return err
		}
		cities := provider.Cities()

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrapf(err, "export: create output dir %s", outDir)
		}

		switch format {
		case "json":
			reports, err := export.BuildAllReports(cmd.Context(), cities, workers, watchLimit)
			if err != nil {
				return eris.Wrap(err, "export: build reports")
			}

			ranked := scoring.RankCities(cities)
			if err := export.WriteJSONFile(filepath.Join(outDir, "classement.json"), ranked); err != nil {
				return err
			}
			for _, report := range reports {
				name := fmt.Sprintf("%s.json", report.City.INSEECode)
				if err := export.WriteJSONFile(filepath.Join(outDir, name), report); err != nil {
					return err
				}
			}

			zap.L().Info("export complete",
				zap.String("format", format),
				zap.String("dir", outDir),
				zap.Int("reports", len(reports)),
			)

		case "xlsx":
			ranked := scoring.RankCities(cities)
			rows := make([][]string, 0, len(ranked))
			for _, r := range ranked {
				rows = append(rows, export.CityRow(r))
			}
			path := filepath.Join(outDir, "classement.xlsx")
			if err := export.WriteXLSX(path, "Villes", export.CityHeader, rows); err != nil {
				return err
			}

			zap.L().Info("export complete",
				zap.String("format", format),
				zap.String("file", path),
				zap.Int("cities", len(ranked)),
			)

		case "geojson":
			fc := export.DistrictGeoJSON(cities)
			path := filepath.Join(outDir, "quartiers.geojson")
			if err := export.WriteJSONFile(path, fc); err != nil {
				return err
			}

			zap.L().Info("export complete",
				zap.String("format", format),
				zap.String("file", path),
				zap.Int("features", len(fc.Features)),
			)

		default:
			return eris.Errorf("export: unsupported format %q", format)
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "", "output format: json, xlsx, geojson (default from config)")
	exportCmd.Flags().Int("workers", 0, "concurrent report builders (default from config)")
	exportCmd.Flags().Int("watch-limit", 0, "max watch entries per city (default from config)")
	rootCmd.AddCommand(exportCmd)
}
