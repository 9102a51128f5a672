package scoring

import (
	"fmt"
	"sort"

	"github.com/terrascope/invest-cli/internal/model"
)

// ReasonType tags a watch-list reason with the criterion that fired.
type ReasonType string

const (
	ReasonVacancy    ReasonType = "vacance"
	ReasonPopulation ReasonType = "population"
	ReasonScore      ReasonType = "score"
	ReasonResidences ReasonType = "residences"
	ReasonPressure   ReasonType = "pression"
	ReasonSeniors    ReasonType = "seniors"
	ReasonStability  ReasonType = "stabilite"
)

// Reason is one factual ground for flagging a district, with a
// formatted value and a reader-facing explanation.
type Reason struct {
	Type        ReasonType `json:"type"`
	Label       string     `json:"label"`
	Value       string     `json:"valeur"`
	Description string     `json:"description"`
}

// FlaggedDistrict is a district on the watch list: its score, the
// ordered reasons that flagged it, and the number of criteria it met.
// Recomputed per request, never stored.
type FlaggedDistrict struct {
	District      *model.District `json:"quartier"`
	Score         DistrictScore   `json:"score"`
	Reasons       []Reason        `json:"raisons"`
	CriteriaCount int             `json:"nb_criteres"`
}

// minWatchResults is the guaranteed minimum size of the watch list when
// enough districts exist.
const minWatchResults = 5

// watchInputs are the per-district values the criteria evaluate,
// derived once with the same missing-data defaults the reasons use.
type watchInputs struct {
	vacancyPct   float64
	population   int
	principalPct float64
	housingTotal int
	pressure     float64
	seniorsPct   float64
	weakStable   bool
}

func deriveWatchInputs(d *model.District) watchInputs {
	pressure := d.Indicators.ResidentialPressure
	if pressure == 0 {
		pressure = 3
	}
	return watchInputs{
		vacancyPct:   d.Stats.VacancyRatePct,
		population:   d.Stats.Population,
		principalPct: d.Stats.Housing.PrincipalSharePct(100),
		housingTotal: d.Stats.Housing.Total,
		pressure:     pressure,
		seniorsPct:   d.Stats.PctAge60Plus,
		weakStable:   d.Indicators.Stability == model.StabilityWeak,
	}
}

// countCriteria evaluates the seven watch criteria. A district is
// flagged when at least two hold.
func countCriteria(in watchInputs, score DistrictScore) int {
	criteria := [...]bool{
		in.vacancyPct > 10,
		score.Total < 55,
		in.population < 500,
		in.principalPct < 70 && in.housingTotal > 100, // small stocks are too noisy
		in.pressure < 2,
		in.seniorsPct > 35,
		in.weakStable,
	}

	n := 0
	for _, c := range criteria {
		if c {
			n++
		}
	}
	return n
}

// buildReasons generates the factual reasons attached to a flagged
// district. Thresholds are intentionally not identical to the flagging
// criteria everywhere: vacancy has a tighter "elevated" message above
// 12%, and the score reason only appears below 50.
func buildReasons(in watchInputs, score DistrictScore) []Reason {
	var reasons []Reason

	switch {
	case in.vacancyPct > 12:
		reasons = append(reasons, Reason{
			Type:        ReasonVacancy,
			Label:       "Taux de vacance élevé",
			Value:       fmt.Sprintf("%.1f%%", in.vacancyPct),
			Description: "Un taux supérieur à 12% peut indiquer une offre excédentaire par rapport à la demande locative.",
		})
	case in.vacancyPct > 10:
		reasons = append(reasons, Reason{
			Type:        ReasonVacancy,
			Label:       "Taux de vacance supérieur à la moyenne",
			Value:       fmt.Sprintf("%.1f%%", in.vacancyPct),
			Description: "Un taux entre 10% et 12% suggère un déséquilibre potentiel entre offre et demande.",
		})
	}

	if in.population > 0 && in.population < 500 {
		reasons = append(reasons, Reason{
			Type:        ReasonPopulation,
			Label:       "Population limitée",
			Value:       fmt.Sprintf("%d habitants", in.population),
			Description: "Une population réduite peut signifier moins de commerces, services et transports à proximité.",
		})
	}

	if score.Total < 50 {
		reasons = append(reasons, Reason{
			Type:        ReasonScore,
			Label:       "Score d'investissement bas",
			Value:       fmt.Sprintf("%d/100", score.Total),
			Description: "Le score composite intègre plusieurs indicateurs : accessibilité, potentiel locatif, démographie et liquidité.",
		})
	}

	if in.principalPct < 70 && in.housingTotal > 100 {
		reasons = append(reasons, Reason{
			Type:        ReasonResidences,
			Label:       "Faible part de résidences principales",
			Value:       fmt.Sprintf("%.1f%%", in.principalPct),
			Description: "Une proportion élevée de résidences secondaires ou vacantes peut indiquer un quartier moins dynamique.",
		})
	}

	if in.pressure < 2 {
		reasons = append(reasons, Reason{
			Type:        ReasonPressure,
			Label:       "Faible pression résidentielle",
			Value:       fmt.Sprintf("%.1f/5", in.pressure),
			Description: "Une faible pression indique peu de tension sur le marché locatif, potentiellement moins de demande.",
		})
	}

	if in.seniorsPct > 35 {
		reasons = append(reasons, Reason{
			Type:        ReasonSeniors,
			Label:       "Forte proportion de seniors",
			Value:       fmt.Sprintf("%.1f%% de 60+ ans", in.seniorsPct),
			Description: "Un quartier vieillissant peut avoir moins de demande locative de la part des actifs et jeunes ménages.",
		})
	}

	if in.weakStable {
		reasons = append(reasons, Reason{
			Type:        ReasonStability,
			Label:       "Faible stabilité résidentielle",
			Value:       "Turnover élevé",
			Description: "Un fort renouvellement de population peut indiquer un quartier peu attractif sur le long terme.",
		})
	}

	return reasons
}

// backfillReason is attached to low-score districts added to reach the
// minimum result size when they triggered no explicit criterion.
func backfillReason(score DistrictScore) Reason {
	return Reason{
		Type:        ReasonScore,
		Label:       "Score parmi les plus bas de la ville",
		Value:       fmt.Sprintf("%d/100", score.Total),
		Description: "Ce quartier fait partie des moins bien notés selon notre méthodologie de scoring.",
	}
}

// DistrictsToWatch evaluates every district of a city against the watch
// criteria and returns the flagged ones, worst first: criteria count
// descending, then total score ascending. Districts without population
// data are excluded entirely. When fewer than five districts qualify,
// the list is backfilled with the lowest-scoring remaining districts
// until five are returned or the pool is exhausted. The limit caps the
// final list.
func DistrictsToWatch(districts []model.District, limit, cityScore int) []FlaggedDistrict {
	ranked := RankDistricts(districts, cityScore)

	all := make([]FlaggedDistrict, 0, len(ranked))
	for _, r := range ranked {
		if r.District.Stats.Population <= 0 {
			continue
		}
		in := deriveWatchInputs(r.District)
		all = append(all, FlaggedDistrict{
			District:      r.District,
			Score:         r.Score,
			Reasons:       buildReasons(in, r.Score),
			CriteriaCount: countCriteria(in, r.Score),
		})
	}

	var flagged, rest []FlaggedDistrict
	for _, f := range all {
		if f.CriteriaCount >= 2 {
			flagged = append(flagged, f)
		} else {
			rest = append(rest, f)
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].CriteriaCount != flagged[j].CriteriaCount {
			return flagged[i].CriteriaCount > flagged[j].CriteriaCount
		}
		return flagged[i].Score.Total < flagged[j].Score.Total
	})

	if len(flagged) >= minWatchResults {
		return capList(flagged, limit)
	}

	// Backfill with the worst remaining scores.
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Score.Total < rest[j].Score.Total
	})
	missing := minWatchResults - len(flagged)
	for _, f := range rest {
		if missing == 0 {
			break
		}
		if len(f.Reasons) == 0 {
			f.Reasons = []Reason{backfillReason(f.Score)}
		}
		flagged = append(flagged, f)
		missing--
	}

	return capList(flagged, limit)
}

func capList(list []FlaggedDistrict, limit int) []FlaggedDistrict {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
