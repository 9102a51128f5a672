package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope/invest-cli/internal/model"
	"github.com/terrascope/invest-cli/internal/scoring"
)

func reportCity(name, code string, vacancy float64) model.City {
	return model.City{
		Name:      name,
		INSEECode: code,
		Stats: model.AggregateStats{
			Population:     200_000,
			Housing:        110_000,
			PrincipalHomes: 95_000,
			VacancyRatePct: vacancy,
		},
		Districts: []model.District{
			{
				IRISID: code + "0101",
				Name:   "Centre",
				Stats: model.DistrictStats{
					Population:     4000,
					VacancyRatePct: vacancy,
				},
			},
			{
				IRISID: code + "0102",
				Name:   "Nord",
				Stats: model.DistrictStats{
					Population:     3000,
					VacancyRatePct: vacancy + 8,
				},
				Indicators: model.Indicators{Stability: model.StabilityWeak},
			},
		},
		DVF: &model.DVFSummary{
			TotalSales:    1500,
			MedianPriceM2: 3200,
			P25PriceM2:    2600,
			P75PriceM2:    3900,
			Quality:       model.QualityGood,
		},
	}
}

func TestBuildCityReport(t *testing.T) {
	cities := []model.City{reportCity("Villetest", "10001", 6)}
	ranked := scoring.RankCities(cities)

	report := BuildCityReport(ranked[0], 10)

	assert.Equal(t, "Villetest", report.City.Name)
	assert.Equal(t, "10001", report.City.INSEECode)
	assert.Equal(t, 200_000, report.City.Population)
	assert.Equal(t, ranked[0].Score.Total, report.Score.Total)

	require.Len(t, report.Districts, 2)
	assert.Equal(t, 1, report.Districts[0].Score.Rank)

	// Both districts surface: the watch list backfills to its minimum.
	assert.Len(t, report.Watch, 2)
}

func TestBuildAllReportsOrderMatchesRanking(t *testing.T) {
	cities := []model.City{
		reportCity("Médiocre", "10002", 14),
		reportCity("Saine", "10001", 6),
	}

	reports, err := BuildAllReports(context.Background(), cities, 4, 10)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "Saine", reports[0].City.Name)
	assert.Equal(t, "Médiocre", reports[1].City.Name)
	assert.Greater(t, reports[0].Score.Total, reports[1].Score.Total)
}

func TestBuildAllReportsSingleWorker(t *testing.T) {
	cities := []model.City{reportCity("Villetest", "10001", 6)}

	reports, err := BuildAllReports(context.Background(), cities, 1, 5)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.NotEmpty(t, reports[0].Districts)
}

func TestDistrictGeoJSON(t *testing.T) {
	cities := []model.City{
		reportCity("Villetest", "10001", 6),
		reportCity("Autreville", "10002", 9),
	}

	fc := DistrictGeoJSON(cities)
	require.Len(t, fc.Features, 4)

	ids := make(map[interface{}]bool)
	for _, f := range fc.Features {
		ids[f.ID] = true
		assert.Contains(t, f.Properties, "score_total")
		assert.Contains(t, f.Properties, "distance_centre_km")
	}
	assert.Len(t, ids, 4)
}
