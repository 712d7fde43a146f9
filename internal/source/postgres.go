package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of database operations the Postgres source needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// selectStandardProducts reads the flat shape, one row per product.
const selectStandardProducts = `SELECT id, name, category_name, size_range_name, gender, version
FROM standard_products
ORDER BY version, id`

// Postgres loads the catalog from the standard_products table.
type Postgres struct {
	DB Querier
}

// Load queries every product once.
func (s Postgres) Load(ctx context.Context) (*core.Catalog, error) {
	rows, err := s.DB.Query(ctx, selectStandardProducts)
	if err != nil {
		return nil, fmt.Errorf("query standard products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		var (
			p       core.Product
			version int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.SizeRange, &p.Gender, &version); err != nil {
			return nil, fmt.Errorf("scan standard product: %w", err)
		}
		p.Version = strconv.FormatInt(version, 10)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standard products: %w", err)
	}

	if err := Validate(products); err != nil {
		return nil, fmt.Errorf("load catalog from postgres: %w", err)
	}
	return build(products, "postgres", SchemaStandardProducts), nil
}
