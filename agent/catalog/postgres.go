package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// PostgresConfig is read from the environment with the CATALOG_ prefix.
type PostgresConfig struct {
	DSN     string        `envconfig:"DSN"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID         int64    `bun:"id,pk,autoincrement"`
	Name       string   `bun:"name,notnull"`
	Price      float64  `bun:"price"`
	Materials  []string `bun:"materials,array"`
	Features   []string `bun:"features,array"`
	Collection string   `bun:"collection"`
}

type outletRow struct {
	bun.BaseModel `bun:"table:outlets,alias:o"`

	ID       int64    `bun:"id,pk,autoincrement"`
	Name     string   `bun:"name,notnull"`
	Address  string   `bun:"address"`
	City     string   `bun:"city"`
	Services []string `bun:"services,array"`
	Hours    string   `bun:"hours"`
}

// PostgresProvider loads the catalog from a Postgres database. Rows are read
// on every Load call; callers are expected to cache the result themselves.
type PostgresProvider struct {
	db      *bun.DB
	timeout time.Duration
}

var _ contractx.CatalogProvider = (*PostgresProvider)(nil)

func NewPostgresProvider(cfg PostgresConfig) *PostgresProvider {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(cfg.Timeout),
	))
	return &PostgresProvider{
		db:      bun.NewDB(sqldb, pgdialect.New()),
		timeout: cfg.Timeout,
	}
}

func (p *PostgresProvider) Close() error {
	return p.db.Close()
}

func (p *PostgresProvider) LoadProducts(ctx context.Context) ([]contractx.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var rows []productRow
	if err := p.db.NewSelect().Model(&rows).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: select products: %v", contractx.ErrCatalogLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: products table is empty", contractx.ErrCatalogLoad)
	}

	entities := make([]contractx.Entity, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, contractx.Entity{
			Kind:       contractx.EntityProduct,
			Name:       r.Name,
			Price:      r.Price,
			Materials:  r.Materials,
			Features:   r.Features,
			Collection: r.Collection,
		})
	}
	return entities, nil
}

func (p *PostgresProvider) LoadOutlets(ctx context.Context) ([]contractx.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var rows []outletRow
	if err := p.db.NewSelect().Model(&rows).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: select outlets: %v", contractx.ErrCatalogLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: outlets table is empty", contractx.ErrCatalogLoad)
	}

	entities := make([]contractx.Entity, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, contractx.Entity{
			Kind:     contractx.EntityOutlet,
			Name:     r.Name,
			Address:  r.Address,
			City:     r.City,
			Services: r.Services,
			Hours:    r.Hours,
		})
	}
	return entities, nil
}
