package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents a single item in the catalogue. A product with ID zero
// is transient: it has never been persisted and the store will assign its
// identifier on creation.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	Category    Category
}

func (p *Product) String() string {
	id := "None"
	if p.ID != 0 {
		id = fmt.Sprintf("%d", p.ID)
	}
	return fmt.Sprintf("<Product %s id=[%s]>", p.Name, id)
}

// Serialize renders the product as the wire-level mapping. Price is rendered
// as its exact decimal string and category as its declared name; a transient
// id is rendered as null.
func (p *Product) Serialize() map[string]any {
	var id any
	if p.ID != 0 {
		id = p.ID
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize populates the product from an untrusted wire-level mapping.
// Fields are validated in a fixed order so the first problem encountered is
// deterministic: name, then the available type check, then category, then the
// remaining required keys. The id key is ignored; identifiers are assigned by
// the store. Only the in-memory object is mutated.
func (p *Product) Deserialize(data map[string]any) error {
	name, err := stringField(data, "name")
	if err != nil {
		return err
	}

	rawAvailable, hasAvailable := data["available"]
	available, isBool := rawAvailable.(bool)
	if hasAvailable && !isBool {
		return NewDataValidationError(
			"Invalid type for boolean [available], got: %T", rawAvailable)
	}

	rawCategory, err := stringField(data, "category")
	if err != nil {
		return err
	}
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return NewDataValidationError("Invalid attribute: %s", rawCategory)
	}

	if !hasAvailable {
		return NewDataValidationError("Invalid product: missing available")
	}
	description, err := stringField(data, "description")
	if err != nil {
		return err
	}
	rawPrice, hasPrice := data["price"]
	if !hasPrice {
		return NewDataValidationError("Invalid product: missing price")
	}
	price, err := parsePrice(rawPrice)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Available = available
	p.Category = category
	return nil
}

// stringField extracts a required string key from the mapping.
func stringField(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok {
		return "", NewDataValidationError("Invalid product: missing %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", NewDataValidationError("Invalid type for string [%s], got: %T", key, v)
	}
	return s, nil
}

// parsePrice converts a wire-level price value to an exact decimal. String
// and numeric inputs are accepted; the conversion never round-trips through a
// binary float representation of the digits the caller sent.
func parsePrice(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, NewDataValidationError(
				"Invalid type for decimal [price], got: %v", n)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, NewDataValidationError(
				"Invalid type for decimal [price], got: %v", n)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case decimal.Decimal:
		return n, nil
	default:
		return decimal.Decimal{}, NewDataValidationError(
			"Invalid type for decimal [price], got: %T", v)
	}
}
