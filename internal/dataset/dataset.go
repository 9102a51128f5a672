// Package dataset loads the territorial JSON dataset and exposes it
// through a read-only Provider. The dataset is loaded once and treated
// as immutable; the scoring packages receive slices from it explicitly
// and never reach back into the provider.
package dataset

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/terrascope/invest-cli/internal/model"
)

// Provider wraps a loaded dataset with lookup indexes. Safe for
// concurrent use: nothing is mutated after construction.
type Provider struct {
	data   *model.Dataset
	byCode map[string]*model.City
	bySlug map[string]*model.City
}

// New builds a Provider over an already-deserialized dataset. Cities
// missing their INSEE code or name are a structural defect of the
// input, not something scoring can degrade around.
func New(data *model.Dataset) (*Provider, error) {
	p := &Provider{
		data:   data,
		byCode: make(map[string]*model.City, len(data.Cities)),
		bySlug: make(map[string]*model.City, len(data.Cities)),
	}

	for i := range data.Cities {
		city := &data.Cities[i]
		if city.INSEECode == "" || city.Name == "" {
			return nil, eris.Errorf("dataset: city %d is missing code_insee or nom", i)
		}
		p.byCode[city.INSEECode] = city
		p.bySlug[Slug(city.Name)] = city
	}

	return p, nil
}

// Load reads and indexes a dataset file.
func Load(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read file")
	}

	var data model.Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, eris.Wrap(err, "dataset: decode json")
	}

	p, err := New(&data)
	if err != nil {
		return nil, err
	}

	zap.L().Info("dataset: loaded",
		zap.String("path", path),
		zap.String("version", data.Metadata.Version),
		zap.Int("cities", len(data.Cities)),
		zap.Int("districts", data.GlobalStats.DistrictCount),
	)

	return p, nil
}

// Cities returns all cities. The slice and its contents must be
// treated as read-only.
func (p *Provider) Cities() []model.City {
	return p.data.Cities
}

// CityByCode returns the city with the given INSEE code, or nil.
func (p *Provider) CityByCode(code string) *model.City {
	return p.byCode[code]
}

// CityBySlug returns the city whose slugified name matches, or nil.
func (p *Provider) CityBySlug(slug string) *model.City {
	return p.bySlug[slug]
}

// Resolve finds a city by INSEE code, slug, or exact name, in that
// order. Returns nil when nothing matches.
func (p *Provider) Resolve(key string) *model.City {
	if c := p.byCode[key]; c != nil {
		return c
	}
	if c := p.bySlug[Slug(key)]; c != nil {
		return c
	}
	return nil
}

// Search returns up to limit cities whose name, department or region
// contains the query, case-insensitively.
func (p *Provider) Search(query string, limit int) []*model.City {
	q := strings.ToLower(query)

	var out []*model.City
	for i := range p.data.Cities {
		city := &p.data.Cities[i]
		if strings.Contains(strings.ToLower(city.Name), q) ||
			strings.Contains(strings.ToLower(city.Department.Name), q) ||
			strings.Contains(strings.ToLower(city.Region.Name), q) {
			out = append(out, city)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Metadata returns the dataset build metadata.
func (p *Provider) Metadata() model.Metadata {
	return p.data.Metadata
}

// GlobalStats returns the dataset-wide totals.
func (p *Provider) GlobalStats() model.GlobalStats {
	return p.data.GlobalStats
}
