// Package model defines the territorial dataset types: cities, IRIS
// districts, and DVF transaction summaries.
package model

import "github.com/paulmach/orb"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point converts to an orb.Point (lon, lat order).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Department is the administrative department a city belongs to.
type Department struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Region is the administrative region a city belongs to.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AggregateStats holds city-wide INSEE aggregates.
//
// nb_logements is expected to equal principales + secondaires + vacants
// but the source data does not guarantee it; scoring tolerates the
// inconsistency.
type AggregateStats struct {
	Population     int     `json:"population_totale"`
	Households     int     `json:"nb_menages"`
	Housing        int     `json:"nb_logements"`
	PrincipalHomes int     `json:"nb_residences_principales"`
	SecondaryHomes int     `json:"nb_residences_secondaires"`
	VacantHomes    int     `json:"nb_logements_vacants"`
	VacancyRatePct float64 `json:"taux_vacance_moyen_pct"`
}

// HousingStock is the housing breakdown of a district.
type HousingStock struct {
	Total     int `json:"total"`
	Principal int `json:"residences_principales"`
	Secondary int `json:"residences_secondaires"`
	Vacant    int `json:"logements_vacants"`
}

// PrincipalSharePct returns the share of principal residences in
// percent, or the given fallback when the total is zero.
func (h HousingStock) PrincipalSharePct(fallback float64) float64 {
	if h.Total <= 0 {
		return fallback
	}
	return float64(h.Principal) / float64(h.Total) * 100
}

// DistrictStats holds per-IRIS INSEE statistics.
type DistrictStats struct {
	Population     int          `json:"population"`
	Households     int          `json:"menages"`
	HouseholdSize  float64      `json:"taille_menage_moyenne"`
	PctAge15To29   float64      `json:"pct_15_29_ans"`
	PctAge60Plus   float64      `json:"pct_60_plus_ans"`
	Housing        HousingStock `json:"logements"`
	VacancyRatePct float64      `json:"taux_vacance_pct"`
	PopulationYear int          `json:"annee_population"`
	HousingYear    int          `json:"annee_logements"`
	Source         string       `json:"source,omitempty"`
}

// Indicators are pre-computed qualitative indicators shipped with each
// district. Stability is decoded into a tagged level at load time.
type Indicators struct {
	ResidentialPressure float64        `json:"pression_residentielle"`
	VacancyLevel        string         `json:"niveau_vacance"`
	DemographicProfile  string         `json:"profil_demographique"`
	Stability           StabilityLevel `json:"stabilite_residentielle"`
}

// DVFTypeStats summarizes transactions for one property type
// (apartments or houses) in a city or district.
type DVFTypeStats struct {
	Sales         int         `json:"nb_ventes"`
	MedianPriceM2 float64     `json:"prix_m2_median"`
	MeanPriceM2   float64     `json:"prix_m2_moyen"`
	P25PriceM2    float64     `json:"prix_m2_p25"`
	P75PriceM2    float64     `json:"prix_m2_p75"`
	MedianSurface float64     `json:"surface_mediane,omitempty"`
	Quality       DataQuality `json:"qualite_donnees"`
}

// Spread returns the P75-P25 interquartile price range.
func (d DVFTypeStats) Spread() float64 {
	return d.P75PriceM2 - d.P25PriceM2
}

// DVFSummary aggregates transaction data for a whole city.
//
// A summary is either real (sourced from the dataset) or synthesized by
// the estimate package; synthesized summaries always carry
// IsEstimated=true and must never be written back into the dataset.
type DVFSummary struct {
	TotalSales    int           `json:"nb_ventes_total"`
	MedianPriceM2 float64       `json:"prix_m2_median_global"`
	MeanPriceM2   float64       `json:"prix_m2_moyen_global"`
	P25PriceM2    float64       `json:"prix_m2_p25"`
	P75PriceM2    float64       `json:"prix_m2_p75"`
	Apartments    *DVFTypeStats `json:"appartements,omitempty"`
	Houses        *DVFTypeStats `json:"maisons,omitempty"`
	Quality       DataQuality   `json:"qualite_donnees"`
	Source        string        `json:"source,omitempty"`
	Year          int           `json:"annee,omitempty"`
	IsEstimated   bool          `json:"is_estimated,omitempty"`
}

// HasSales reports whether the summary carries usable transaction data.
func (d *DVFSummary) HasSales() bool {
	return d != nil && d.TotalSales > 0
}

// District is one IRIS statistical zone. A district belongs to exactly
// one city; the owning City slice is the single source of truth.
type District struct {
	IRISID       string        `json:"iris_id"`
	Name         string        `json:"nom"`
	Coordinates  Coordinates   `json:"coordonnees"`
	Stats        DistrictStats `json:"stats_insee"`
	Indicators   Indicators    `json:"indicateurs_calcules"`
	DistrictName string        `json:"nom_quartier,omitempty"`
	CommuneName  string        `json:"nom_commune,omitempty"`
	ApartmentDVF *DVFTypeStats `json:"dvf_appartements,omitempty"`
	HouseDVF     *DVFTypeStats `json:"dvf_maisons,omitempty"`
}

// City is a municipality with its IRIS districts and optional DVF data.
type City struct {
	Name          string         `json:"nom"`
	INSEECode     string         `json:"code_insee"`
	Department    Department     `json:"departement"`
	Region        Region         `json:"region"`
	PostalCodes   []string       `json:"codes_postaux,omitempty"`
	Coordinates   Coordinates    `json:"coordonnees"`
	Stats         AggregateStats `json:"stats_agregees"`
	DistrictCount int            `json:"nb_quartiers_iris"`
	Districts     []District     `json:"quartiers"`
	DVF           *DVFSummary    `json:"dvf,omitempty"`
}

// Metadata describes the dataset build.
type Metadata struct {
	Title         string   `json:"titre"`
	Description   string   `json:"description"`
	Version       string   `json:"version"`
	ReferenceYear int      `json:"annee_reference"`
	GeneratedAt   string   `json:"date_generation"`
	Sources       []string `json:"sources"`
}

// GlobalStats are dataset-wide totals.
type GlobalStats struct {
	CityCount       int `json:"nb_villes"`
	DistrictCount   int `json:"nb_total_iris"`
	PopulationTotal int `json:"population_totale_couverte"`
	DVFSalesTotal   int `json:"total_ventes_dvf"`
}

// Dataset is the full territorial dataset as shipped in JSON.
type Dataset struct {
	Metadata    Metadata    `json:"metadata"`
	GlobalStats GlobalStats `json:"statistiques_globales"`
	Cities      []City      `json:"villes"`
}
