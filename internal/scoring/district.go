package scoring

import (
	"math"
	"sort"

	"github.com/terrascope/invest-cli/internal/model"
)

// DistrictScore is the 0-100 investment score of an IRIS district. The
// category set differs from CityScore on purpose: districts have no
// market-dynamism component and gain a residential-stability one.
type DistrictScore struct {
	Total               int     `json:"score_total"`
	MarketAccessibility float64 `json:"accessibilite_marche"` // 0-25
	RentalPotential     float64 `json:"potentiel_locatif"`    // 0-30
	Demographics        float64 `json:"demographie"`          // 0-25
	VolumeQuality       float64 `json:"volume_qualite"`       // 0-15
	Stability           float64 `json:"stabilite"`            // 0-5
	Rank                int     `json:"rang,omitempty"`
}

// RankedDistrict pairs a district with its score inside a ranking pass.
type RankedDistrict struct {
	District *model.District `json:"quartier"`
	Score    DistrictScore   `json:"score"`
}

// DefaultCityScore is assumed when a district is scored without a
// parent city score.
const DefaultCityScore = 70

// District neutral fallbacks (60% of each category maximum, matching
// the generous degenerate default of normalizeDistrict; accessibility
// uses the fixed 13/25 the no-data path returns).
const (
	neutralDistrictAccessibility = 13
	neutralDistrictRental        = 18
	neutralDistrictDemographics  = 15
	neutralDistrictVolume        = 9
)

// usableTypeStats reports whether a per-type DVF summary carries a
// usable median price.
func usableTypeStats(s *model.DVFTypeStats) bool {
	return s != nil && s.MedianPriceM2 > 0
}

// districtAccessibility scores market accessibility (0-25) from the
// district's own apartment/house transaction summaries: average median
// price and average interquartile spread, on the same absolute scales
// as the city scorer. Districts without any price data get a flat
// neutral 13.
func districtAccessibility(d *model.District) float64 {
	var medianSum, spreadSum float64
	var n int
	if usableTypeStats(d.ApartmentDVF) {
		medianSum += d.ApartmentDVF.MedianPriceM2
		spreadSum += d.ApartmentDVF.Spread()
		n++
	}
	if usableTypeStats(d.HouseDVF) {
		medianSum += d.HouseDVF.MedianPriceM2
		spreadSum += d.HouseDVF.Spread()
		n++
	}
	if n == 0 {
		return neutralDistrictAccessibility
	}

	priceScore := normalizeDistrict(medianSum/float64(n), 1500, 12000, 15, true)
	spreadScore := normalizeDistrict(spreadSum/float64(n), 500, 4000, 10, true)

	return safeScore(priceScore+spreadScore, neutralDistrictAccessibility)
}

// districtRentalPotential scores rental potential (0-30): stepped
// vacancy scoring peaking at 5% and floored at 6 points above 12%,
// residential pressure (1-5) and principal-residence share.
func districtRentalPotential(d *model.District) float64 {
	var vacancyScore float64
	switch tv := d.Stats.VacancyRatePct; {
	case tv < 3:
		vacancyScore = 10 // overly tight
	case tv <= 5:
		vacancyScore = 13
	case tv <= 8:
		vacancyScore = 12
	case tv <= 12:
		vacancyScore = 10 - (tv-8)*0.4
	default:
		vacancyScore = math.Max(6, 10-(tv-8)*0.5)
	}

	pressureScore := normalizeDistrict(d.Indicators.ResidentialPressure, 1, 5, 10, false)

	principalPct := d.Stats.Housing.PrincipalSharePct(80)
	stabilityScore := normalizeDistrict(principalPct, 65, 95, 7, false)

	return safeScore(vacancyScore+pressureScore+stabilityScore, neutralDistrictRental)
}

// districtDemographics scores demographics (0-25): young-adult share
// with an 18-25% optimum, senior share with a 15-25% optimum tapering
// above 35%, household size with a 2.0-2.5 optimum. Missing values
// assume typical urban defaults.
func districtDemographics(d *model.District) float64 {
	youth := d.Stats.PctAge15To29
	if youth == 0 {
		youth = 18
	}
	var youthScore float64
	switch {
	case youth < 15:
		youthScore = normalizeDistrict(youth, 10, 18, 8, false)
	case youth <= 25:
		youthScore = 10
	default:
		youthScore = math.Max(7, 10-(youth-25)*0.15)
	}

	seniors := d.Stats.PctAge60Plus
	if seniors == 0 {
		seniors = 20
	}
	var seniorScore float64
	switch {
	case seniors < 12:
		seniorScore = 6
	case seniors <= 25:
		seniorScore = 8
	case seniors <= 35:
		seniorScore = 7
	default:
		seniorScore = math.Max(5, 8-(seniors-35)*0.2)
	}

	household := d.Stats.HouseholdSize
	if household == 0 {
		household = 2.2
	}
	var householdScore float64
	switch {
	case household < 1.8:
		householdScore = 5
	case household <= 2.5:
		householdScore = 7
	default:
		householdScore = normalizeDistrict(household, 2.5, 3.5, 7, false)
	}

	return safeScore(youthScore+seniorScore+householdScore, neutralDistrictDemographics)
}

// districtVolumeQuality scores volume and data quality (0-15): housing
// stock depth (6), local transaction volume (6) and the best available
// data-quality label (3).
func districtVolumeQuality(d *model.District) float64 {
	var housingScore float64
	switch n := d.Stats.Housing.Total; {
	case n < 300:
		housingScore = 2
	case n < 600:
		housingScore = 3
	case n < 1000:
		housingScore = 4
	case n < 2000:
		housingScore = 5
	default:
		housingScore = 6
	}

	var sales int
	if d.ApartmentDVF != nil {
		sales += d.ApartmentDVF.Sales
	}
	if d.HouseDVF != nil {
		sales += d.HouseDVF.Sales
	}
	var salesScore float64
	switch {
	case sales <= 0:
		salesScore = 1
	case sales < 10:
		salesScore = 2
	case sales < 25:
		salesScore = 3
	case sales < 50:
		salesScore = 4
	case sales < 100:
		salesScore = 5
	default:
		salesScore = 6
	}

	qualityScore := 1.5 // no data
	if q := bestQuality(d); q != model.QualityUnknown {
		switch q {
		case model.QualityGood:
			qualityScore = 3
		case model.QualityMedium:
			qualityScore = 2
		default: // weak or estimated
			qualityScore = 1
		}
	}

	return safeScore(housingScore+salesScore+qualityScore, neutralDistrictVolume)
}

// bestQuality returns the best data-quality label among the district's
// per-type summaries.
func bestQuality(d *model.District) model.DataQuality {
	best := model.QualityUnknown
	if d.ApartmentDVF != nil && d.ApartmentDVF.Quality > best {
		best = d.ApartmentDVF.Quality
	}
	if d.HouseDVF != nil && d.HouseDVF.Quality > best {
		best = d.HouseDVF.Quality
	}
	return best
}

// districtStability scores residential stability (0-5) from the tagged
// stability level decided at load time.
func districtStability(d *model.District) float64 {
	switch d.Indicators.Stability {
	case model.StabilityVeryStable:
		return 5
	case model.StabilityStable:
		return 4
	case model.StabilityModerate:
		return 3
	case model.StabilityWeak:
		return 2
	default:
		return 3
	}
}

// cityMultiplier derives the ceiling multiplier from the parent city's
// score: a city at 100 leaves districts untouched (x1.0), a city at 50
// caps them around 70 (x0.7).
func cityMultiplier(cityScore int) float64 {
	return 0.4 + 0.6*float64(cityScore)/100
}

// ScoreDistrict computes a district's investment score, weighted by the
// parent city's score: both the total and every sub-score are scaled by
// the same multiplier, so districts of a weak city cannot outscore the
// ceiling their city implies.
func ScoreDistrict(d *model.District, cityScore int) DistrictScore {
	accessibility := districtAccessibility(d)
	rental := districtRentalPotential(d)
	demographics := districtDemographics(d)
	volume := districtVolumeQuality(d)
	stability := districtStability(d)

	raw := accessibility + rental + demographics + volume + stability
	mult := cityMultiplier(cityScore)

	return DistrictScore{
		Total:               int(math.Round(raw * mult)),
		MarketAccessibility: round1(accessibility * mult),
		RentalPotential:     round1(rental * mult),
		Demographics:        round1(demographics * mult),
		VolumeQuality:       round1(volume * mult),
		Stability:           round1(stability * mult),
	}
}

// RankDistricts scores all districts of one city and returns them
// sorted by total score descending with ranks 1..N. Ties keep input
// order and receive consecutive distinct ranks.
func RankDistricts(districts []model.District, cityScore int) []RankedDistrict {
	ranked := make([]RankedDistrict, 0, len(districts))
	for i := range districts {
		d := &districts[i]
		ranked = append(ranked, RankedDistrict{District: d, Score: ScoreDistrict(d, cityScore)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	for i := range ranked {
		ranked[i].Score.Rank = i + 1
	}

	return ranked
}

// TopDistricts returns the limit best-scoring districts of a city.
func TopDistricts(districts []model.District, limit, cityScore int) []RankedDistrict {
	ranked := RankDistricts(districts, cityScore)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DistrictScoreWithRank runs a full ranking pass over the city's
// districts and returns the matching district's score with its rank.
func DistrictScoreWithRank(d *model.District, all []model.District, cityScore int) DistrictScore {
	for _, r := range RankDistricts(all, cityScore) {
		if r.District.IRISID == d.IRISID {
			return r.Score
		}
	}
	return ScoreDistrict(d, cityScore)
}
