package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope/invest-cli/internal/model"
)

// metropolis builds a large, healthy city with real transaction data,
// in the shape of a Lyon-class market.
func metropolis() *model.City {
	districts := make([]model.District, 2)
	for i := range districts {
		districts[i] = model.District{
			IRISID: "693800000" + string(rune('1'+i)),
			Name:   "Quartier",
			Stats: model.DistrictStats{
				Population:    8000,
				HouseholdSize: 2.0,
				PctAge15To29:  20,
				PctAge60Plus:  18,
			},
		}
	}
	return &model.City{
		Name:      "Grandville",
		INSEECode: "69123",
		Stats: model.AggregateStats{
			Population:     500_000,
			Housing:        300_000,
			PrincipalHomes: 270_000,
			VacancyRatePct: 6,
		},
		Districts: districts,
		DVF: &model.DVFSummary{
			TotalSales:    1200,
			MedianPriceM2: 4800,
			P25PriceM2:    3800,
			P75PriceM2:    5800,
			Quality:       model.QualityGood,
		},
	}
}

func TestScoreCityBreakdown(t *testing.T) {
	score := ScoreCity(metropolis())

	assert.InDelta(t, 16.0, score.MarketAccessibility, 0.05)
	assert.InDelta(t, 12.7, score.MarketDynamism, 0.05)
	assert.InDelta(t, 23.6, score.RentalPotential, 0.05)
	assert.InDelta(t, 8.4, score.Demographics, 0.05)
	assert.InDelta(t, 6.0, score.VolumeLiquidity, 0.05)
	assert.Equal(t, 67, score.Total)
	assert.Equal(t, 0, score.Rank)
}

func TestScoreCityDeterministic(t *testing.T) {
	city := metropolis()
	first := ScoreCity(city)
	second := ScoreCity(city)
	assert.Equal(t, first, second)
}

func TestScoreCityBounds(t *testing.T) {
	tests := []struct {
		name string
		city *model.City
	}{
		{"healthy metropolis", metropolis()},
		{"empty city", &model.City{Name: "Videville", INSEECode: "00001"}},
		{"no transaction data", func() *model.City {
			c := metropolis()
			c.DVF = nil
			return c
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreCity(tt.city)
			assert.GreaterOrEqual(t, score.Total, 0)
			assert.LessOrEqual(t, score.Total, 100)
			assert.GreaterOrEqual(t, score.MarketAccessibility, 0.0)
			assert.LessOrEqual(t, score.MarketAccessibility, 25.0)
			assert.GreaterOrEqual(t, score.MarketDynamism, 0.0)
			assert.LessOrEqual(t, score.MarketDynamism, 20.0)
			assert.GreaterOrEqual(t, score.RentalPotential, 0.0)
			assert.LessOrEqual(t, score.RentalPotential, 25.0)
			assert.GreaterOrEqual(t, score.Demographics, 0.0)
			assert.LessOrEqual(t, score.Demographics, 20.0)
			assert.GreaterOrEqual(t, score.VolumeLiquidity, 0.0)
			assert.LessOrEqual(t, score.VolumeLiquidity, 10.0)
		})
	}
}

func TestCityAccessibilityEstimationPenalty(t *testing.T) {
	real := &model.DVFSummary{
		TotalSales:    1200,
		MedianPriceM2: 4800,
		P25PriceM2:    3800,
		P75PriceM2:    5800,
		Quality:       model.QualityGood,
	}
	estimated := *real
	estimated.IsEstimated = true

	assert.InDelta(t, 16.0, cityAccessibility(real), 0.01)
	assert.InDelta(t, 12.8, cityAccessibility(&estimated), 0.01)
}

func TestCityDynamismQualitySteps(t *testing.T) {
	tests := []struct {
		name string
		dvf  model.DVFSummary
		want float64
	}{
		{"good quality", model.DVFSummary{Quality: model.QualityGood}, 8},
		{"medium quality", model.DVFSummary{Quality: model.QualityMedium}, 6},
		{"weak quality", model.DVFSummary{Quality: model.QualityWeak}, 4},
		{"unknown quality", model.DVFSummary{}, 5},
		{"estimated flag wins", model.DVFSummary{Quality: model.QualityGood, IsEstimated: true}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Zero sales, so the score is the quality component alone.
			assert.InDelta(t, tt.want, cityDynamism(&tt.dvf), 0.001)
		})
	}
}

func TestCityRentalPotentialVacancyBand(t *testing.T) {
	base := model.AggregateStats{
		Population:     100_000,
		Housing:        55_000,
		PrincipalHomes: 46_750,
	}

	at := func(vacancy float64) float64 {
		stats := base
		stats.VacancyRatePct = vacancy
		return cityRentalPotential(stats)
	}

	// The 5-8% band is the optimum; both directions fall away.
	assert.Greater(t, at(6), at(2))
	assert.Greater(t, at(6), at(12))
	assert.InDelta(t, at(5), at(8), 0.001)
}

func TestCityRentalPotentialDegradesToNeutral(t *testing.T) {
	// Zero housing and population make tension and principal share
	// incomputable.
	got := cityRentalPotential(model.AggregateStats{})
	assert.InDelta(t, neutralRental, got, 0.001)
}

func TestCityDemographicsNoDistricts(t *testing.T) {
	city := &model.City{Name: "Sansquartiers"}
	assert.InDelta(t, neutralDemographics, cityDemographics(city), 0.001)
}

func TestRankCities(t *testing.T) {
	strong := metropolis()

	weak := metropolis()
	weak.Name = "Faibleville"
	weak.INSEECode = "00002"
	weak.Stats.VacancyRatePct = 14
	weak.DVF.TotalSales = 60
	weak.DVF.Quality = model.QualityWeak

	ranked := RankCities([]model.City{*weak, *strong})
	require.Len(t, ranked, 2)

	assert.Equal(t, "Grandville", ranked[0].City.Name)
	assert.Equal(t, 1, ranked[0].Score.Rank)
	assert.Equal(t, "Faibleville", ranked[1].City.Name)
	assert.Equal(t, 2, ranked[1].Score.Rank)
	assert.Greater(t, ranked[0].Score.Total, ranked[1].Score.Total)
}

func TestTopCities(t *testing.T) {
	cities := []model.City{*metropolis(), *metropolis(), *metropolis()}

	assert.Len(t, TopCities(cities, 2), 2)
	assert.Len(t, TopCities(cities, 0), 3)
	assert.Len(t, TopCities(cities, 10), 3)
}

func TestCityScoreWithRank(t *testing.T) {
	strong := metropolis()
	weak := metropolis()
	weak.Name = "Faibleville"
	weak.INSEECode = "00002"
	weak.Stats.VacancyRatePct = 14
	weak.DVF.TotalSales = 60
	weak.DVF.Quality = model.QualityWeak

	all := []model.City{*strong, *weak}

	score := CityScoreWithRank(&all[1], all)
	assert.Equal(t, 2, score.Rank)
	assert.Equal(t, ScoreCity(&all[1]).Total, score.Total)
}
