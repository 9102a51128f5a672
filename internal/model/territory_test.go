package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalSharePct(t *testing.T) {
	tests := []struct {
		name     string
		stock    HousingStock
		fallback float64
		want     float64
	}{
		{"normal share", HousingStock{Total: 1000, Principal: 850}, 80, 85},
		{"empty stock falls back", HousingStock{}, 80, 80},
		{"all principal", HousingStock{Total: 200, Principal: 200}, 80, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stock.PrincipalSharePct(tt.fallback), 0.001)
		})
	}
}

func TestDVFTypeStatsSpread(t *testing.T) {
	s := DVFTypeStats{P25PriceM2: 2400, P75PriceM2: 3600}
	assert.InDelta(t, 1200, s.Spread(), 0.001)
}

func TestDVFSummaryHasSales(t *testing.T) {
	var nilSummary *DVFSummary
	assert.False(t, nilSummary.HasSales())
	assert.False(t, (&DVFSummary{}).HasSales())
	assert.True(t, (&DVFSummary{TotalSales: 1}).HasSales())
}

func TestCoordinatesPoint(t *testing.T) {
	c := Coordinates{Latitude: 45.76, Longitude: 4.84}
	p := c.Point()
	assert.InDelta(t, 4.84, p.Lon(), 0.001)
	assert.InDelta(t, 45.76, p.Lat(), 0.001)
}
