package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

var (
	//go:embed data/products.json
	productsRaw []byte

	//go:embed data/outlets.json
	outletsRaw []byte
)

// StaticProvider serves the embedded seed catalog. It is the default
// provider when no database is configured.
type StaticProvider struct{}

var _ contractx.CatalogProvider = (*StaticProvider)(nil)

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) LoadProducts(_ context.Context) ([]contractx.Entity, error) {
	return decodeEntities(productsRaw, contractx.EntityProduct)
}

func (p *StaticProvider) LoadOutlets(_ context.Context) ([]contractx.Entity, error) {
	return decodeEntities(outletsRaw, contractx.EntityOutlet)
}

func decodeEntities(raw []byte, kind contractx.EntityKind) ([]contractx.Entity, error) {
	var entities []contractx.Entity
	if err := json.Unmarshal(raw, &entities); err != nil {
		return nil, fmt.Errorf("%w: decode %s seed: %v", contractx.ErrCatalogLoad, kind, err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("%w: empty %s seed", contractx.ErrCatalogLoad, kind)
	}
	for i := range entities {
		entities[i].Kind = kind
		if entities[i].Name == "" {
			return nil, fmt.Errorf("%w: %s entry %d has no name", contractx.ErrCatalogLoad, kind, i)
		}
	}
	return entities, nil
}
