// Package geo holds the geographic helpers for district output:
// distances from the city center and GeoJSON feature building.
package geo

import (
	"math"

	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/terrascope/invest-cli/internal/model"
	"github.com/terrascope/invest-cli/internal/scoring"
)

// DistanceKM returns the great-circle distance between two points in
// kilometers.
func DistanceKM(a, b model.Coordinates) float64 {
	return geo.Distance(a.Point(), b.Point()) / 1000
}

// DistrictFeature builds a GeoJSON point feature for a scored district,
// carrying the score breakdown and the distance to the city center as
// properties.
func DistrictFeature(city *model.City, r scoring.RankedDistrict) *geojson.Feature {
	f := geojson.NewFeature(r.District.Coordinates.Point())
	f.ID = r.District.IRISID
	f.Properties = geojson.Properties{
		"iris_id":              r.District.IRISID,
		"nom":                  r.District.Name,
		"commune":              city.Name,
		"score_total":          r.Score.Total,
		"rang":                 r.Score.Rank,
		"accessibilite_marche": r.Score.MarketAccessibility,
		"potentiel_locatif":    r.Score.RentalPotential,
		"demographie":          r.Score.Demographics,
		"volume_qualite":       r.Score.VolumeQuality,
		"stabilite":            r.Score.Stability,
		"distance_centre_km":   round2(DistanceKM(city.Coordinates, r.District.Coordinates)),
	}
	return f
}

// CityDistrictCollection builds a FeatureCollection of all scored
// districts of one city.
func CityDistrictCollection(city *model.City, ranked []scoring.RankedDistrict) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range ranked {
		fc.Append(DistrictFeature(city, r))
	}
	return fc
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
