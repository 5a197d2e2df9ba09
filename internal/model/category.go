package model

import "fmt"

// Category classifies a product. The set of categories is fixed at build
// time; products always carry exactly one member of this set.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

// categoryNames maps each category to its declared name, in declaration
// order. The index of each name is its Category value.
var categoryNames = []string{
	"UNKNOWN",
	"CLOTHS",
	"FOOD",
	"HOUSEWARES",
	"AUTOMOTIVE",
	"TOOLS",
}

// CategoryNotFoundError is returned when a category name does not match any
// defined member.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category not found: %s", e.Name)
}

// Categories returns all defined categories in declaration order.
func Categories() []Category {
	cats := make([]Category, len(categoryNames))
	for i := range categoryNames {
		cats[i] = Category(i)
	}
	return cats
}

// String returns the declared name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[CategoryUnknown]
	}
	return categoryNames[c]
}

// ParseCategory looks up a category by its declared name. The match is exact
// and case-sensitive; an unrecognised name yields a CategoryNotFoundError,
// never a default member.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryUnknown, &CategoryNotFoundError{Name: name}
}
