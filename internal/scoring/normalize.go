// Package scoring implements the comparative investment scoring of
// cities and IRIS districts, plus the districts-to-watch rule engine.
//
// Every function in this package is a pure transformation of its
// inputs. There are no error returns: arithmetic that cannot be
// computed degrades to a documented neutral default instead of failing.
package scoring

import "math"

// safeScore guards a computed value against NaN and infinities,
// substituting the neutral fallback for that sub-score.
func safeScore(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// normalizeCity scales value from [min,max] onto [0,pointsMax],
// clamped. With inverse set, lower raw values score higher. A
// degenerate range yields the midpoint.
func normalizeCity(value, min, max, pointsMax float64, inverse bool) float64 {
	if max == min {
		return pointsMax / 2
	}

	x := (value - min) / (max - min)
	x = math.Max(0, math.Min(1, x))
	if inverse {
		x = 1 - x
	}

	return x * pointsMax
}

// normalizeDistrict is the district-level variant: the normalized value
// is floored at 30% of pointsMax so sparse IRIS data never collapses a
// sub-score to zero. A degenerate range yields a generous 60% of the
// maximum, not the midpoint. Not interchangeable with normalizeCity.
func normalizeDistrict(value, min, max, pointsMax float64, inverse bool) float64 {
	if max == min {
		return pointsMax * 0.6
	}

	x := (value - min) / (max - min)
	x = math.Max(0, math.Min(1, x))
	if inverse {
		x = 1 - x
	}

	return (x*0.7 + 0.3) * pointsMax
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
