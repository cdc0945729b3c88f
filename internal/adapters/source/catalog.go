package source

import (
	"context"
	"strings"

	"github.com/okian/monetizer/internal/domain/model"
)

// CatalogStrategyGenerator looks tactics up in a fixed catalog keyed by
// segment (case-insensitive). Segments missing from the catalog get the
// default tactics, so every requested segment is covered.
type CatalogStrategyGenerator struct {
	catalog  map[string][]string
	defaults []string
}

// NewCatalogStrategyGenerator builds a generator from catalog and defaults.
func NewCatalogStrategyGenerator(catalog map[string][]string, defaults []string) *CatalogStrategyGenerator {
	g := &CatalogStrategyGenerator{
		catalog:  make(map[string][]string, len(catalog)),
		defaults: append([]string(nil), defaults...),
	}
	for segment, tactics := range catalog {
		g.catalog[strings.ToLower(segment)] = append([]string(nil), tactics...)
	}
	return g
}

// GenerateStrategies returns the catalog tactics for each opportunity.
func (g *CatalogStrategyGenerator) GenerateStrategies(ctx context.Context, opportunities model.OpportunityList) (*model.TacticMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := model.NewOrdered[[]string](len(opportunities))
	for _, segment := range opportunities {
		tactics, ok := g.catalog[strings.ToLower(segment)]
		if !ok {
			tactics = g.defaults
		}
		out.Set(segment, append([]string(nil), tactics...))
	}
	return out, nil
}
