package export

import (
	"context"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"github.com/terrascope/invest-cli/internal/geo"
	"github.com/terrascope/invest-cli/internal/model"
	"github.com/terrascope/invest-cli/internal/scoring"
)

// CitySummary is the slim city identity block embedded in reports, so
// a report does not duplicate the full district list of the dataset.
type CitySummary struct {
	Name       string           `json:"nom"`
	INSEECode  string           `json:"code_insee"`
	Department model.Department `json:"departement"`
	Region     model.Region     `json:"region"`
	Population int              `json:"population"`
}

// CityReport is the full scored view of one city: its score and rank,
// its district ranking and its watch list.
type CityReport struct {
	City      CitySummary               `json:"ville"`
	Score     scoring.CityScore         `json:"score"`
	Districts []scoring.RankedDistrict  `json:"quartiers"`
	Watch     []scoring.FlaggedDistrict `json:"quartiers_a_surveiller"`
}

func summarize(city *model.City) CitySummary {
	return CitySummary{
		Name:       city.Name,
		INSEECode:  city.INSEECode,
		Department: city.Department,
		Region:     city.Region,
		Population: city.Stats.Population,
	}
}

// BuildCityReport assembles the report for one ranked city.
func BuildCityReport(r scoring.RankedCity, watchLimit int) CityReport {
	return CityReport{
		City:      summarize(r.City),
		Score:     r.Score,
		Districts: scoring.RankDistricts(r.City.Districts, r.Score.Total),
		Watch:     scoring.DistrictsToWatch(r.City.Districts, watchLimit, r.Score.Total),
	}
}

// BuildAllReports ranks the whole dataset once, then fans the per-city
// district work out across workers. Report order matches the city
// ranking.
func BuildAllReports(ctx context.Context, cities []model.City, workers, watchLimit int) ([]CityReport, error) {
	ranked := scoring.RankCities(cities)
	reports := make([]CityReport, len(ranked))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rc := range ranked {
		i, rc := i, rc
		g.Go(func() error {
			reports[i] = BuildCityReport(rc, watchLimit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// DistrictGeoJSON merges every city's district features into one
// FeatureCollection.
func DistrictGeoJSON(cities []model.City) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, rc := range scoring.RankCities(cities) {
		for _, rd := range scoring.RankDistricts(rc.City.Districts, rc.Score.Total) {
			fc.Append(geo.DistrictFeature(rc.City, rd))
		}
	}
	return fc
}
