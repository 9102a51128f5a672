package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope/invest-cli/internal/model"
)

func loadFixture(t *testing.T) *Provider {
	t.Helper()
	p, err := Load(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	return p
}

func TestLoad(t *testing.T) {
	p := loadFixture(t)

	assert.Len(t, p.Cities(), 2)
	assert.Equal(t, "2.1", p.Metadata().Version)
	assert.Equal(t, 2024, p.Metadata().ReferenceYear)
	assert.Equal(t, 3, p.GlobalStats().DistrictCount)
	assert.Equal(t, 9400, p.GlobalStats().DVFSalesTotal)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestLoadDecodesLabels(t *testing.T) {
	p := loadFixture(t)

	st := p.CityByCode("42218")
	require.NotNil(t, st)

	// Free-text labels are decoded into tagged levels at load time.
	assert.Equal(t, model.StabilityWeak, st.Districts[0].Indicators.Stability)
	assert.Equal(t, model.StabilityStable, st.Districts[1].Indicators.Stability)
	assert.Equal(t, model.QualityGood, st.Districts[0].ApartmentDVF.Quality)
	assert.Equal(t, model.QualityGood, st.DVF.Quality)

	grenoble := p.CityByCode("38185")
	require.NotNil(t, grenoble)
	assert.Equal(t, model.StabilityVeryStable, grenoble.Districts[0].Indicators.Stability)
	assert.Equal(t, model.QualityMedium, grenoble.Districts[0].ApartmentDVF.Quality)
}

func TestCityLookups(t *testing.T) {
	p := loadFixture(t)

	t.Run("by code", func(t *testing.T) {
		city := p.CityByCode("38185")
		require.NotNil(t, city)
		assert.Equal(t, "Grenoble", city.Name)
	})

	t.Run("by slug", func(t *testing.T) {
		city := p.CityBySlug("saint-etienne")
		require.NotNil(t, city)
		assert.Equal(t, "Saint-Étienne", city.Name)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Nil(t, p.CityByCode("75056"))
		assert.Nil(t, p.CityBySlug("paris"))
	})
}

func TestResolve(t *testing.T) {
	p := loadFixture(t)

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"insee code", "42218", "Saint-Étienne"},
		{"slug", "saint-etienne", "Saint-Étienne"},
		{"accented name", "Saint-Étienne", "Saint-Étienne"},
		{"case and accents folded", "SAINT-ETIENNE", "Saint-Étienne"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := p.Resolve(tt.key)
			require.NotNil(t, city)
			assert.Equal(t, tt.want, city.Name)
		})
	}

	assert.Nil(t, p.Resolve("atlantis"))
}

func TestSearch(t *testing.T) {
	p := loadFixture(t)

	t.Run("by name fragment", func(t *testing.T) {
		matches := p.Search("etienne", 0)
		assert.Empty(t, matches) // accents are not folded in search

		matches = p.Search("Étienne", 0)
		require.Len(t, matches, 1)
		assert.Equal(t, "Saint-Étienne", matches[0].Name)
	})

	t.Run("by department", func(t *testing.T) {
		matches := p.Search("isère", 0)
		require.Len(t, matches, 1)
		assert.Equal(t, "Grenoble", matches[0].Name)
	})

	t.Run("by region hits both", func(t *testing.T) {
		matches := p.Search("rhône", 0)
		assert.Len(t, matches, 2)
	})

	t.Run("limit", func(t *testing.T) {
		matches := p.Search("rhône", 1)
		assert.Len(t, matches, 1)
	})
}

func TestNewRejectsIncompleteCities(t *testing.T) {
	data := &model.Dataset{
		Cities: []model.City{{Name: "Anonyme"}},
	}
	_, err := New(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code_insee")
}
