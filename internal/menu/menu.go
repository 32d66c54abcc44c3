package menu

import (
	"fmt"
	"strings"
)

// ItemType categorizes a menu item. Drinks skip the customization dialog in
// the order workflow.
type ItemType string

const (
	TypeDrink   ItemType = "DRINK"
	TypeStarter ItemType = "STARTER"
	TypeMain    ItemType = "MAIN"
	TypeDessert ItemType = "DESSERT"
)

// KnownTypes lists the accepted item types in display order.
var KnownTypes = []ItemType{TypeDrink, TypeStarter, TypeMain, TypeDessert}

// MenuItem represents a dish or drink offered by the restaurant. The identity
// is assigned by the backend and immutable once created.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
	Type        ItemType `json:"type"`
}

// IsDrink reports whether the item bypasses per-item customization.
func (m MenuItem) IsDrink() bool {
	return m.Type == TypeDrink
}

// HasIngredient reports whether name is one of the item's ingredients,
// compared case-insensitively.
func (m MenuItem) HasIngredient(name string) bool {
	for _, ing := range m.Ingredients {
		if strings.EqualFold(strings.TrimSpace(ing), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// CreateItemRequest is the payload for adding a product to the menu.
type CreateItemRequest struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
	Type        ItemType `json:"type"`
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreateItem validates a menu item before it is sent to the backend.
func ValidateCreateItem(req CreateItemRequest) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Price < 0 {
		errs = append(errs, ValidationError{
			Field:   "price",
			Message: "price cannot be negative",
		})
	}

	if !knownType(req.Type) {
		errs = append(errs, ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("type must be one of %v", KnownTypes),
		})
	}

	for i, ing := range req.Ingredients {
		if strings.TrimSpace(ing) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("ingredients[%d]", i),
				Message: "ingredient cannot be empty",
			})
		}
	}

	return errs
}

func knownType(t ItemType) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType normalizes user input into an ItemType.
func ParseType(s string) (ItemType, error) {
	t := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	if !knownType(t) {
		return "", fmt.Errorf("unknown menu item type %q", s)
	}
	return t, nil
}
