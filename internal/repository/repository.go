package repository

import (
	"context"

	"product-catalog/internal/model"

	"github.com/shopspring/decimal"
)

// ProductRepository defines the persistence and query operations for
// products. Lifecycle operations (Create/Update/Delete) each run as a single
// transaction against the store; query operations re-issue their SQL on every
// call and may be repeated to restart a result set.
type ProductRepository interface {
	// Create inserts a new row for the product's current field values and
	// writes the store-assigned identifier back into the product. Any
	// pre-existing ID on the product is ignored; the object is always
	// treated as new. A store rejection rolls back and surfaces as a
	// DataValidationError, leaving the in-memory ID untouched.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the product's current field values to the row
	// identified by its ID. A product with no ID fails with a
	// DataValidationError before any write is attempted.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the row identified by the product's ID. Deleting a row
	// that is already absent is not an error.
	Delete(ctx context.Context, product *model.Product) error

	// All retrieves every persisted product.
	All(ctx context.Context) ([]model.Product, error)

	// FindByID retrieves a single product by its ID, or (nil, nil) when no
	// such row exists.
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// FindByName retrieves all products whose name exactly equals name.
	FindByName(ctx context.Context, name string) ([]model.Product, error)

	// FindByAvailability retrieves all products with the given availability.
	FindByAvailability(ctx context.Context, available bool) ([]model.Product, error)

	// FindByCategory retrieves all products in the given category.
	FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error)

	// FindByPrice retrieves all products whose price exactly equals price.
	FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error)
}
