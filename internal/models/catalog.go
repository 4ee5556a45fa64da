package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields are serialized as plain JSON numbers to keep the
	// wire format compatible with existing clients.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category represents a menu category
type Category struct {
	CategoryID int    `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
}

// Dish represents a dish on the menu
type Dish struct {
	DishID     int             `json:"dish_id" db:"dish_id"`
	Name       string          `json:"name" db:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	CategoryID int             `json:"category_id" db:"category_id"`
}

// MenuEntry is a dish joined with its category name
type MenuEntry struct {
	DishID       int             `json:"dish_id" db:"dish_id"`
	Name         string          `json:"name" db:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
	CategoryID   int             `json:"category_id" db:"category_id"`
	CategoryName string          `json:"category_name" db:"category_name"`
}

// AddDishRequest represents the request to add a dish to the menu
type AddDishRequest struct {
	Name       string          `json:"name"`
	CategoryID int             `json:"category_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// Validate checks the add-dish request fields
func (req *AddDishRequest) Validate() error {
	if req.Name == "" {
		return ValidationError{Field: "name", Message: "dish name is required"}
	}
	if len(req.Name) > 100 {
		return ValidationError{Field: "name", Message: "dish name must not exceed 100 characters"}
	}
	if req.CategoryID < 1 {
		return ValidationError{Field: "category_id", Message: "category_id is required"}
	}
	if !req.UnitPrice.IsPositive() {
		return ValidationError{Field: "unit_price", Message: "unit_price must be a positive number"}
	}
	return nil
}
