package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productRepository implements the ProductRepository interface using
// PostgreSQL. The price column is bound and scanned as text so values never
// pass through a binary float on their way to or from the NUMERIC column.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, description, price::text, available, category`

// Create inserts a new row and writes the assigned identifier back into the
// product. The insert runs in its own transaction; on failure it is rolled
// back and the product's in-memory ID is left as it was.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, description, price, available, category)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price.String(),
		product.Available,
		product.Category.String(),
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return model.NewDataValidationError("failed to create product: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to commit product create")
		return model.NewDataValidationError("failed to create product: %v", err)
	}

	product.ID = id
	r.logger.Debug().Int64("product_id", id).Str("name", product.Name).Msg("product created")
	return nil
}

// Update persists the product's current field values to its existing row.
// The identity precondition is checked before any write reaches the store.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	if product.ID == 0 {
		r.logger.Warn().Str("name", product.Name).Msg("update called on transient product")
		return model.NewDataValidationError("Update called with empty ID field")
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3::numeric, available = $4, category = $5
		WHERE id = $6
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price.String(),
		product.Available,
		product.Category.String(),
		product.ID,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return model.NewDataValidationError("failed to update product: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to commit product update")
		return model.NewDataValidationError("failed to update product: %v", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product updated")
	return nil
}

// Delete removes the product's row. A row that is already gone is treated as
// deleted; the product's in-memory ID is not cleared.
func (r *productRepository) Delete(ctx context.Context, product *model.Product) error {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, product.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", product.ID).
		Int64("rows_affected", tag.RowsAffected()).
		Msg("product deleted")
	return nil
}

// All retrieves every persisted product.
func (r *productRepository) All(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// FindByID retrieves a single product by its ID. A missing row yields
// (nil, nil), not an error.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	row := r.pool.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return product, nil
}

// FindByName retrieves all products whose name exactly equals name.
func (r *productRepository) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE name = $1 ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query products by name")
		return nil, fmt.Errorf("failed to query products by name: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// FindByAvailability retrieves all products with the given availability.
func (r *productRepository) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE available = $1 ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query, available)
	if err != nil {
		r.logger.Error().Err(err).Bool("available", available).Msg("failed to query products by availability")
		return nil, fmt.Errorf("failed to query products by availability: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// FindByCategory retrieves all products in the given category.
func (r *productRepository) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query, category.String())
	if err != nil {
		r.logger.Error().Err(err).Stringer("category", category).Msg("failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// FindByPrice retrieves all products whose price exactly equals price. The
// value is bound as an exact decimal string so the comparison never passes
// through a binary float.
func (r *productRepository) FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE price = $1::numeric ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query, price.String())
	if err != nil {
		r.logger.Error().Err(err).Str("price", price.String()).Msg("failed to query products by price")
		return nil, fmt.Errorf("failed to query products by price: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// collectProducts drains rows into a slice. Results are materialised before
// the connection goes back to the pool; callers restart a query by calling
// the repository method again.
func (r *productRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanProduct maps one row onto a Product, rebuilding the exact decimal
// price and the category member from their column representations.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p            model.Product
		priceText    string
		categoryName string
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Description, &priceText, &p.Available, &categoryName); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, fmt.Errorf("invalid price in store: %w", err)
	}
	p.Price = price

	category, err := model.ParseCategory(categoryName)
	if err != nil {
		return nil, fmt.Errorf("invalid category in store: %w", err)
	}
	p.Category = category

	return &p, nil
}
