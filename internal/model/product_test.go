package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]any {
	return map[string]any{
		"name":        "Fedora",
		"description": "A red hat",
		"price":       "12.50",
		"available":   true,
		"category":    "CLOTHS",
	}
}

func TestProductString(t *testing.T) {
	product := Product{Name: "Fedora"}
	assert.Equal(t, "<Product Fedora id=[None]>", product.String())

	product.ID = 7
	assert.Equal(t, "<Product Fedora id=[7]>", product.String())
}

func TestProductSerialize(t *testing.T) {
	product := Product{
		ID:          42,
		Name:        "Fedora",
		Description: "A red hat",
		Price:       decimal.RequireFromString("12.50"),
		Available:   true,
		Category:    CategoryCloths,
	}

	data := product.Serialize()

	assert.Equal(t, int64(42), data["id"])
	assert.Equal(t, "Fedora", data["name"])
	assert.Equal(t, "A red hat", data["description"])
	assert.Equal(t, "12.5", data["price"])
	assert.Equal(t, true, data["available"])
	assert.Equal(t, "CLOTHS", data["category"])
}

func TestProductSerializeTransientID(t *testing.T) {
	product := Product{Name: "Fedora"}

	data := product.Serialize()

	assert.Nil(t, data["id"])
}

func TestProductDeserialize(t *testing.T) {
	var product Product
	err := product.Deserialize(validPayload())

	require.NoError(t, err)
	assert.Equal(t, "Fedora", product.Name)
	assert.Equal(t, "A red hat", product.Description)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, product.Available)
	assert.Equal(t, CategoryCloths, product.Category)
	assert.Equal(t, int64(0), product.ID, "deserialize must not assign an id")
}

func TestProductDeserializeRoundTrip(t *testing.T) {
	original := Product{
		Name:        "Toaster",
		Description: "Two slots",
		Price:       decimal.RequireFromString("29.99"),
		Available:   false,
		Category:    CategoryHousewares,
	}

	var restored Product
	require.NoError(t, restored.Deserialize(original.Serialize()))

	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Description, restored.Description)
	assert.True(t, original.Price.Equal(restored.Price))
	assert.Equal(t, original.Available, restored.Available)
	assert.Equal(t, original.Category, restored.Category)
}

func TestProductDeserializeValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(map[string]any)
		messagePart string
	}{
		{
			name:        "Missing name",
			mutate:      func(m map[string]any) { delete(m, "name") },
			messagePart: "Invalid product: missing name",
		},
		{
			name:        "Available as string",
			mutate:      func(m map[string]any) { m["available"] = "yes" },
			messagePart: "Invalid type for boolean [available]",
		},
		{
			name:        "Missing available",
			mutate:      func(m map[string]any) { delete(m, "available") },
			messagePart: "Invalid product: missing available",
		},
		{
			name:        "Missing category",
			mutate:      func(m map[string]any) { delete(m, "category") },
			messagePart: "Invalid product: missing category",
		},
		{
			name:        "Unknown category name",
			mutate:      func(m map[string]any) { m["category"] = "INVALID_CATEGORY" },
			messagePart: "Invalid attribute: INVALID_CATEGORY",
		},
		{
			name:        "Category lookup is case-sensitive",
			mutate:      func(m map[string]any) { m["category"] = "food" },
			messagePart: "Invalid attribute: food",
		},
		{
			name:        "Missing description",
			mutate:      func(m map[string]any) { delete(m, "description") },
			messagePart: "Invalid product: missing description",
		},
		{
			name:        "Missing price",
			mutate:      func(m map[string]any) { delete(m, "price") },
			messagePart: "Invalid product: missing price",
		},
		{
			name:        "Unparseable price",
			mutate:      func(m map[string]any) { m["price"] = "a lot" },
			messagePart: "Invalid type for decimal [price]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(payload)

			var product Product
			err := product.Deserialize(payload)

			require.Error(t, err)
			var validationErr *DataValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Message, tt.messagePart)
		})
	}
}

func TestProductDeserializeValidationOrder(t *testing.T) {
	// With several problems present, the first in the fixed validation
	// order wins: name before the available type check.
	payload := validPayload()
	delete(payload, "name")
	payload["available"] = "yes"
	payload["category"] = "INVALID_CATEGORY"

	var product Product
	err := product.Deserialize(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid product: missing name")

	// Then the available type check before category.
	payload = validPayload()
	payload["available"] = "yes"
	payload["category"] = "INVALID_CATEGORY"

	err = product.Deserialize(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid type for boolean [available]")
}

func TestProductDeserializePriceTypes(t *testing.T) {
	tests := []struct {
		name     string
		price    any
		expected string
	}{
		{name: "String price", price: "19.99", expected: "19.99"},
		{name: "JSON number price", price: json.Number("19.99"), expected: "19.99"},
		{name: "Integer price", price: 20, expected: "20"},
		{name: "Int64 price", price: int64(20), expected: "20"},
		{name: "Float price", price: 19.99, expected: "19.99"},
		{name: "Decimal price", price: decimal.RequireFromString("19.99"), expected: "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload["price"] = tt.price

			var product Product
			require.NoError(t, product.Deserialize(payload))
			assert.True(t, product.Price.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, product.Price)
		})
	}
}

func TestProductDeserializeDoesNotPartiallyMutate(t *testing.T) {
	product := Product{
		Name:        "Original",
		Description: "Original description",
		Price:       decimal.RequireFromString("5.00"),
		Available:   true,
		Category:    CategoryTools,
	}

	payload := validPayload()
	payload["price"] = "not a price"

	require.Error(t, product.Deserialize(payload))
	assert.Equal(t, "Original", product.Name)
	assert.Equal(t, "Original description", product.Description)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, CategoryTools, product.Category)
}
