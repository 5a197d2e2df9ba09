package seed

import (
	"context"
	"fmt"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder inserts seed records into the catalogue. Every record passes
// through the same deserialization and lifecycle path as API input, so a
// seed file cannot introduce rows that a client could not have created.
type Seeder struct {
	loader Loader
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(loader Loader, repo repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		repo:   repo,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads the seed file at path and creates one product per record.
// Seeding is skipped when the catalogue already has rows, so restarting the
// service does not duplicate the seed data.
func (s *Seeder) Run(ctx context.Context, path string) (int, error) {
	existing, err := s.repo.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing catalogue: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info().
			Int("existing", len(existing)).
			Msg("catalogue already populated, skipping seed")
		return 0, nil
	}

	records, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	created := 0
	for i, record := range records {
		var product model.Product
		if err := product.Deserialize(record); err != nil {
			return created, fmt.Errorf("invalid seed record %d: %w", i+1, err)
		}

		if err := s.repo.Create(ctx, &product); err != nil {
			return created, fmt.Errorf("failed to create seed record %d: %w", i+1, err)
		}
		created++
	}

	s.logger.Info().Int("created", created).Msg("catalogue seeded")
	return created, nil
}
