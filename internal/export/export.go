// Package export renders rankings and watch lists into the supported
// output formats (csv, xlsx, json, geojson) and builds the bulk
// per-city reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/terrascope/invest-cli/internal/scoring"
)

// CityHeader is the column layout of city ranking exports.
var CityHeader = []string{
	"rang", "ville", "code_insee", "departement", "region",
	"score_total", "accessibilite_marche", "dynamisme_marche",
	"potentiel_locatif", "demographie", "volume_liquidite",
}

// CityRow renders one ranked city.
func CityRow(r scoring.RankedCity) []string {
	return []string{
		fmt.Sprintf("%d", r.Score.Rank),
		r.City.Name,
		r.City.INSEECode,
		r.City.Department.Name,
		r.City.Region.Name,
		fmt.Sprintf("%d", r.Score.Total),
		fmt.Sprintf("%.1f", r.Score.MarketAccessibility),
		fmt.Sprintf("%.1f", r.Score.MarketDynamism),
		fmt.Sprintf("%.1f", r.Score.RentalPotential),
		fmt.Sprintf("%.1f", r.Score.Demographics),
		fmt.Sprintf("%.1f", r.Score.VolumeLiquidity),
	}
}

// DistrictHeader is the column layout of district ranking exports.
var DistrictHeader = []string{
	"rang", "quartier", "iris_id",
	"score_total", "accessibilite_marche", "potentiel_locatif",
	"demographie", "volume_qualite", "stabilite",
}

// DistrictRow renders one ranked district.
func DistrictRow(r scoring.RankedDistrict) []string {
	return []string{
		fmt.Sprintf("%d", r.Score.Rank),
		r.District.Name,
		r.District.IRISID,
		fmt.Sprintf("%d", r.Score.Total),
		fmt.Sprintf("%.1f", r.Score.MarketAccessibility),
		fmt.Sprintf("%.1f", r.Score.RentalPotential),
		fmt.Sprintf("%.1f", r.Score.Demographics),
		fmt.Sprintf("%.1f", r.Score.VolumeQuality),
		fmt.Sprintf("%.1f", r.Score.Stability),
	}
}

// WriteCSV writes a header and rows as CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// WriteXLSX writes a header and rows into a single-sheet workbook.
func WriteXLSX(path, sheetName string, header []string, rows [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().Value = h
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// WriteJSONFile writes v as indented JSON to path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}

	if err := WriteJSON(f, v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "export: close file")
	}
	return nil
}
