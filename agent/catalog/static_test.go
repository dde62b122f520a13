package catalog

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

func TestStaticProviderLoadProducts(t *testing.T) {
	t.Parallel()

	products, err := NewStaticProvider().LoadProducts(context.Background())
	if err != nil {
		t.Fatalf("LoadProducts() error = %v", err)
	}
	if len(products) == 0 {
		t.Fatal("LoadProducts() returned empty catalog")
	}
	for _, p := range products {
		if p.Kind != contractx.EntityProduct {
			t.Fatalf("product %q has kind %s", p.Name, p.Kind)
		}
		if p.Name == "" || p.Price <= 0 {
			t.Fatalf("product entry incomplete: %+v", p)
		}
	}
}

func TestStaticProviderLoadOutlets(t *testing.T) {
	t.Parallel()

	outlets, err := NewStaticProvider().LoadOutlets(context.Background())
	if err != nil {
		t.Fatalf("LoadOutlets() error = %v", err)
	}
	if len(outlets) == 0 {
		t.Fatal("LoadOutlets() returned empty catalog")
	}
	for _, o := range outlets {
		if o.Kind != contractx.EntityOutlet {
			t.Fatalf("outlet %q has kind %s", o.Name, o.Kind)
		}
		if o.Address == "" || o.City == "" {
			t.Fatalf("outlet entry incomplete: %+v", o)
		}
	}
}

func TestDecodeEntitiesRejectsBadSeed(t *testing.T) {
	t.Parallel()

	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`[]`),
		[]byte(`[{"price": 10}]`),
	}
	for _, raw := range cases {
		if _, err := decodeEntities(raw, contractx.EntityProduct); !errors.Is(err, contractx.ErrCatalogLoad) {
			t.Fatalf("decodeEntities(%s) error = %v, want ErrCatalogLoad", raw, err)
		}
	}
}
