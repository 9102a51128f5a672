package scoring

import (
	"math"
	"sort"

	"github.com/terrascope/invest-cli/internal/estimate"
	"github.com/terrascope/invest-cli/internal/model"
)

// CityScore is the comparative 0-100 investment score of a city, with
// its five weighted sub-scores. Rank is only populated by a ranking
// pass over a full comparison set.
type CityScore struct {
	Total               int     `json:"score_total"`
	MarketAccessibility float64 `json:"accessibilite_marche"` // 0-25
	MarketDynamism      float64 `json:"dynamisme_marche"`     // 0-20
	RentalPotential     float64 `json:"potentiel_locatif"`    // 0-25
	Demographics        float64 `json:"demographie"`          // 0-20
	VolumeLiquidity     float64 `json:"volume_liquidite"`     // 0-10
	Rank                int     `json:"rang,omitempty"`
}

// RankedCity pairs a city with its score inside a ranking pass.
type RankedCity struct {
	City  *model.City `json:"ville"`
	Score CityScore   `json:"score"`
}

// Neutral fallbacks used when a sub-score cannot be computed.
const (
	neutralAccessibility   = 12.5
	neutralDynamism        = 10
	neutralRental          = 12.5
	neutralDemographics    = 10
	neutralVolumeLiquidity = 5
	neutralTotal           = 50
)

// cityAccessibility scores market accessibility (0-25): affordable
// median prices and a tight P75-P25 spread score high. Estimated data
// takes a 20% penalty.
func cityAccessibility(dvf *model.DVFSummary) float64 {
	penalty := 1.0
	if dvf.IsEstimated {
		penalty = 0.8
	}

	median := dvf.MedianPriceM2
	if median == 0 {
		median = 3000
	}
	priceScore := normalizeCity(median, 1500, 12000, 15, true)

	spreadScore := normalizeCity(dvf.P75PriceM2-dvf.P25PriceM2, 500, 4000, 10, true)

	return safeScore((priceScore+spreadScore)*penalty, neutralAccessibility)
}

// cityDynamism scores market dynamism (0-20): transaction volume plus a
// stepped data-quality component.
func cityDynamism(dvf *model.DVFSummary) float64 {
	volumeScore := normalizeCity(float64(dvf.TotalSales), 50, 3000, 12, false)

	var qualityScore float64
	switch {
	case dvf.IsEstimated || dvf.Quality == model.QualityEstimated:
		qualityScore = 3
	case dvf.Quality == model.QualityGood:
		qualityScore = 8
	case dvf.Quality == model.QualityMedium:
		qualityScore = 6
	case dvf.Quality == model.QualityWeak:
		qualityScore = 4
	default:
		qualityScore = 5
	}

	return safeScore(volumeScore+qualityScore, neutralDynamism)
}

// cityRentalPotential scores rental potential (0-25): vacancy rate with
// an optimal band of 5-8%, market tension (housing per 1000 residents)
// and the share of principal residences.
func cityRentalPotential(stats model.AggregateStats) float64 {
	var vacancyScore float64
	switch tv := stats.VacancyRatePct; {
	case math.IsNaN(tv):
		vacancyScore = 5
	case tv < 5:
		vacancyScore = 8 - (5-tv)*0.5 // penalize overly tight markets
	case tv <= 8:
		vacancyScore = 10
	default:
		vacancyScore = math.Max(0, 10-(tv-8)*0.8)
	}

	tension := float64(stats.Housing) / float64(stats.Population) * 1000
	tensionScore := normalizeCity(tension, 350, 550, 8, false)

	principalPct := float64(stats.PrincipalHomes) / float64(stats.Housing) * 100
	stabilityScore := normalizeCity(principalPct, 70, 95, 7, false)

	return safeScore(vacancyScore+tensionScore+stabilityScore, neutralRental)
}

// cityDemographics scores demographics (0-20) from the mean of the
// city's district statistics: young-adult share, senior share with a
// peak near 20%, and household size.
func cityDemographics(city *model.City) float64 {
	if len(city.Districts) == 0 {
		return neutralDemographics
	}

	var sumYouth, sumSeniors, sumHousehold float64
	for i := range city.Districts {
		stats := city.Districts[i].Stats
		sumYouth += safeScore(stats.PctAge15To29, 0)
		sumSeniors += safeScore(stats.PctAge60Plus, 0)
		sumHousehold += safeScore(stats.HouseholdSize, 0)
	}

	n := float64(len(city.Districts))
	youth := sumYouth / n
	seniors := sumSeniors / n
	household := sumHousehold / n

	youthScore := normalizeCity(youth, 12, 25, 8, false)

	var seniorScore float64
	if seniors < 20 {
		seniorScore = normalizeCity(seniors, 15, 25, 6, false)
	} else {
		seniorScore = math.Max(0, 6-(seniors-20)*0.2)
	}

	householdScore := normalizeCity(household, 1.8, 2.5, 6, false)

	return safeScore(youthScore+seniorScore+householdScore, neutralDemographics)
}

// cityVolumeLiquidity scores volume and liquidity (0-10): market depth
// in housing units and the yearly sales-to-stock ratio.
func cityVolumeLiquidity(stats model.AggregateStats, dvf *model.DVFSummary) float64 {
	housingScore := normalizeCity(float64(stats.Housing), 10000, 100000, 6, false)

	salesRatio := float64(dvf.TotalSales) / float64(stats.Housing) * 100
	liquidityScore := normalizeCity(salesRatio, 0.5, 3, 4, false)

	return safeScore(housingScore+liquidityScore, neutralVolumeLiquidity)
}

// ScoreCity computes a city's investment score. Cities without usable
// transaction data are scored against an estimated DVF summary, with
// the estimation penalty applied. The score carries no rank; use
// RankCities for that.
func ScoreCity(city *model.City) CityScore {
	dvf := estimate.ResolveDVF(city)

	accessibility := cityAccessibility(dvf)
	dynamism := cityDynamism(dvf)
	rental := cityRentalPotential(city.Stats)
	demographics := cityDemographics(city)
	volume := cityVolumeLiquidity(city.Stats, dvf)

	total := accessibility + dynamism + rental + demographics + volume

	return CityScore{
		Total:               int(math.Round(safeScore(total, neutralTotal))),
		MarketAccessibility: round1(safeScore(accessibility, neutralAccessibility)),
		MarketDynamism:      round1(safeScore(dynamism, neutralDynamism)),
		RentalPotential:     round1(safeScore(rental, neutralRental)),
		Demographics:        round1(safeScore(demographics, neutralDemographics)),
		VolumeLiquidity:     round1(safeScore(volume, neutralVolumeLiquidity)),
	}
}

// RankCities scores every city and returns them sorted by total score
// descending, ranks assigned 1..N. Ties keep input order (stable sort)
// and receive consecutive distinct ranks.
func RankCities(cities []model.City) []RankedCity {
	ranked := make([]RankedCity, 0, len(cities))
	for i := range cities {
		city := &cities[i]
		ranked = append(ranked, RankedCity{City: city, Score: ScoreCity(city)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	for i := range ranked {
		ranked[i].Score.Rank = i + 1
	}

	return ranked
}

// TopCities returns the limit best-scoring cities.
func TopCities(cities []model.City, limit int) []RankedCity {
	ranked := RankCities(cities)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CityScoreWithRank runs a full ranking pass over the comparison set
// and returns the matching city's score with its rank. Callers must
// pass the complete set every time; there is no cached ranking.
func CityScoreWithRank(city *model.City, all []model.City) CityScore {
	for _, r := range RankCities(all) {
		if r.City.INSEECode == city.INSEECode {
			return r.Score
		}
	}
	return ScoreCity(city)
}
