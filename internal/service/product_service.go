package service

import (
	"context"
	"fmt"
	"strconv"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create validates the payload and persists a new product.
func (s *productService) Create(ctx context.Context, payload map[string]any) (*model.Product, error) {
	var product model.Product
	if err := product.Deserialize(payload); err != nil {
		s.logger.Warn().Err(err).Msg("rejected product payload")
		return nil, err
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Debug().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return &product, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Update validates the payload and persists it to an existing product.
func (s *productService) Update(ctx context.Context, id int64, payload map[string]any) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Deserialize(payload); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("rejected product payload")
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, err
	}

	return product, nil
}

// Delete removes the product with the given ID. Deleting an ID that is
// already gone is not an error.
func (s *productService) Delete(ctx context.Context, id int64) error {
	product := &model.Product{ID: id}
	if err := s.productRepo.Delete(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// List retrieves products matching the filter. Name, category and
// availability filters reject bad input with a DataValidationError; an
// unparseable price filter yields a PriceFilterError carrying the raw
// conversion error.
func (s *productService) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	switch {
	case filter.Name != "":
		return s.productRepo.FindByName(ctx, filter.Name)

	case filter.Category != "":
		category, err := model.ParseCategory(filter.Category)
		if err != nil {
			s.logger.Warn().Str("category", filter.Category).Msg("rejected category filter")
			return nil, model.NewDataValidationError("Invalid attribute: %s", filter.Category)
		}
		return s.productRepo.FindByCategory(ctx, category)

	case filter.Available != "":
		available, err := strconv.ParseBool(filter.Available)
		if err != nil {
			s.logger.Warn().Str("available", filter.Available).Msg("rejected availability filter")
			return nil, model.NewDataValidationError(
				"Invalid type for boolean [available], got: %v", filter.Available)
		}
		return s.productRepo.FindByAvailability(ctx, available)

	case filter.Price != "":
		price, err := decimal.NewFromString(filter.Price)
		if err != nil {
			// The conversion failure keeps its own message and is never
			// translated into a DataValidationError; see DESIGN.md.
			s.logger.Warn().Str("price", filter.Price).Msg("rejected price filter")
			return nil, &model.PriceFilterError{Err: err}
		}
		return s.productRepo.FindByPrice(ctx, price)

	default:
		return s.productRepo.All(ctx)
	}
}
