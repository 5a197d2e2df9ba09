package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"product-catalog/internal/database"
	"product-catalog/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	require.NoError(t, database.EnsureSchema(ctx, pool, zerolog.Nop()))

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func testProduct(name, price string, available bool, category model.Category) *model.Product {
	return &model.Product{
		Name:        name,
		Description: "description of " + name,
		Price:       decimal.RequireFromString(price),
		Available:   available,
		Category:    category,
	}
}

func TestProductRepository_Create(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	before, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)

	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)
	require.NoError(t, repo.Create(ctx, product))

	assert.NotZero(t, product.ID)

	after, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)

	stored := after[0]
	assert.Equal(t, product.ID, stored.ID)
	assert.Equal(t, "Fedora", stored.Name)
	assert.Equal(t, "description of Fedora", stored.Description)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, stored.Available)
	assert.Equal(t, model.CategoryCloths, stored.Category)
}

func TestProductRepository_CreateIgnoresExistingID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	// Any pre-set ID is overwritten by the store-assigned one.
	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)
	product.ID = 9999
	require.NoError(t, repo.Create(ctx, product))

	assert.NotEqual(t, int64(9999), product.ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestProductRepository_CreateAssignsUniqueIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		product := testProduct("Widget", "1.00", true, model.CategoryTools)
		require.NoError(t, repo.Create(ctx, product))
		assert.False(t, seen[product.ID], "id %d assigned twice", product.ID)
		seen[product.ID] = true
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestProductRepository_CreateRejectedLeavesIDUnset(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	// Name column is VARCHAR(100); an oversized name is rejected by the store.
	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)
	product.Name = strings.Repeat("x", 200)

	err := repo.Create(ctx, product)
	require.Error(t, err)

	var validationErr *model.DataValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Zero(t, product.ID, "a failed create must not assign an id")

	all, allErr := repo.All(ctx)
	require.NoError(t, allErr)
	assert.Empty(t, all, "a failed create must be rolled back")
}

func TestProductRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)
	require.NoError(t, repo.Create(ctx, product))
	originalID := product.ID

	product.Description = "testing"
	product.Price = decimal.RequireFromString("15.00")
	require.NoError(t, repo.Update(ctx, product))

	assert.Equal(t, originalID, product.ID, "update must not change the id")

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, originalID, all[0].ID)
	assert.Equal(t, "testing", all[0].Description)
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("15.00")))
}

func TestProductRepository_UpdateWithoutID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)

	err := repo.Update(ctx, product)
	require.Error(t, err)

	var validationErr *model.DataValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "empty ID field")
}

func TestProductRepository_Delete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)
	other := testProduct("Toaster", "29.99", false, model.CategoryHousewares)
	require.NoError(t, repo.Create(ctx, product))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.Delete(ctx, product))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "delete must remove exactly one row")
	assert.Equal(t, other.ID, all[0].ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Deleting an already-absent row is not an error.
	require.NoError(t, repo.Delete(ctx, product))
}

func TestProductRepository_FindByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	product := testProduct("Fedora", "12.50", true, model.CategoryCloths)
	require.NoError(t, repo.Create(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, product.Name, found.Name)
	assert.Equal(t, product.Description, found.Description)
	assert.True(t, product.Price.Equal(found.Price))

	missing, err := repo.FindByID(ctx, product.ID+1000)
	require.NoError(t, err, "a missing row is not an error")
	assert.Nil(t, missing)
}

func TestProductRepository_FindByName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("Fedora", "12.50", true, model.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, testProduct("Fedora", "13.00", false, model.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, testProduct("Toaster", "29.99", true, model.CategoryHousewares)))

	found, err := repo.FindByName(ctx, "Fedora")
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, p := range found {
		assert.Equal(t, "Fedora", p.Name)
	}

	// The query is re-issuable with identical results.
	again, err := repo.FindByName(ctx, "Fedora")
	require.NoError(t, err)
	assert.Equal(t, found, again)

	none, err := repo.FindByName(ctx, "Sombrero")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepository_FindByAvailability(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("Fedora", "12.50", true, model.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, testProduct("Toaster", "29.99", false, model.CategoryHousewares)))
	require.NoError(t, repo.Create(ctx, testProduct("Wrench", "9.99", true, model.CategoryTools)))

	available, err := repo.FindByAvailability(ctx, true)
	require.NoError(t, err)
	require.Len(t, available, 2)
	for _, p := range available {
		assert.True(t, p.Available)
	}

	unavailable, err := repo.FindByAvailability(ctx, false)
	require.NoError(t, err)
	require.Len(t, unavailable, 1)
	assert.Equal(t, "Toaster", unavailable[0].Name)
}

func TestProductRepository_FindByCategory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("Fedora", "12.50", true, model.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, testProduct("Beret", "8.00", true, model.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, testProduct("Wrench", "9.99", true, model.CategoryTools)))

	cloths, err := repo.FindByCategory(ctx, model.CategoryCloths)
	require.NoError(t, err)
	require.Len(t, cloths, 2)
	for _, p := range cloths {
		assert.Equal(t, model.CategoryCloths, p.Category)
	}

	food, err := repo.FindByCategory(ctx, model.CategoryFood)
	require.NoError(t, err)
	assert.Empty(t, food)
}

func TestProductRepository_FindByPrice(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("Fedora", "19.99", true, model.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, testProduct("Toaster", "29.99", true, model.CategoryHousewares)))
	require.NoError(t, repo.Create(ctx, testProduct("Wrench", "19.99", true, model.CategoryTools)))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	price := decimal.RequireFromString("19.99")
	found, err := repo.FindByPrice(ctx, price)
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, p := range found {
		assert.True(t, p.Price.Equal(price), "expected %s, got %s", price, p.Price)
	}

	// Equality is on the decimal value, not its rendering.
	alsoFound, err := repo.FindByPrice(ctx, decimal.RequireFromString("19.990"))
	require.NoError(t, err)
	assert.Len(t, alsoFound, 2)

	none, err := repo.FindByPrice(ctx, decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	assert.Empty(t, none)
}
