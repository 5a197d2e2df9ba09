package service

import (
	"context"

	"product-catalog/internal/model"
)

// ProductFilter selects a subset of the catalogue by exact equality on a
// single attribute. At most one field is applied, in the declared order.
// Raw string values are parsed by the service layer.
type ProductFilter struct {
	Name      string
	Category  string
	Available string
	Price     string
}

// ProductService defines operations for product management. Payloads are the
// wire-level six-key mapping consumed by Product.Deserialize.
type ProductService interface {
	// Create validates a payload and persists a new product, returning it
	// with its store-assigned ID.
	Create(ctx context.Context, payload map[string]any) (*model.Product, error)

	// Get retrieves a single product by ID. Returns model.ErrProductNotFound
	// when no such product exists.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// Update validates a payload and persists it to the product with the
	// given ID. Returns model.ErrProductNotFound when no such product exists.
	Update(ctx context.Context, id int64, payload map[string]any) (*model.Product, error)

	// Delete removes the product with the given ID, if present.
	Delete(ctx context.Context, id int64) error

	// List retrieves products matching the filter, or every product when the
	// filter is empty.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
}
