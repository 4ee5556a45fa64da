package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusOpen      OrderStatus = "open"
	StatusCompleted OrderStatus = "completed"
)

// Order represents a table order. TotalPrice is a persisted display
// snapshot written through by the client; the live total is always
// recomputed from the line items.
type Order struct {
	OrderID         int             `json:"order_id" db:"order_id"`
	Status          OrderStatus     `json:"status" db:"status"`
	TotalPrice      decimal.Decimal `json:"total_price" db:"total_price"`
	ConsumptionDate time.Time       `json:"consumption_date" db:"consumption_date"`
	Items           []OrderLineItem `json:"items,omitempty"`
}

// OrderLineItem represents one dish attached to an order. Name and
// unit price are snapshotted at add time, so historical orders are
// immune to later menu price changes.
type OrderLineItem struct {
	OrderDishID      int             `json:"order_dish_id" db:"order_dish_id"`
	OrderID          int             `json:"order_id,omitempty" db:"order_id"`
	DishID           int             `json:"dish_id" db:"dish_id"`
	OrderedName      string          `json:"ordered_name" db:"ordered_name"`
	OrderedUnitPrice decimal.Decimal `json:"ordered_unit_price" db:"ordered_unit_price"`
	Quantity         int             `json:"quantity" db:"quantity"`
}

// AddLineItemRequest represents one element of the add-items request body
type AddLineItemRequest struct {
	DishID           int             `json:"dish_id"`
	Quantity         int             `json:"quantity"`
	OrderedName      string          `json:"ordered_name"`
	OrderedUnitPrice decimal.Decimal `json:"ordered_unit_price"`
}

// Validate checks the add-item request fields. A zero quantity is
// filled in as 1; a negative quantity is rejected.
func (req *AddLineItemRequest) Validate() error {
	if req.DishID < 1 {
		return ValidationError{Field: "dish_id", Message: "dish_id is required"}
	}
	if req.OrderedName == "" {
		return ValidationError{Field: "ordered_name", Message: "ordered_name is required"}
	}
	if len(req.OrderedName) > 100 {
		return ValidationError{Field: "ordered_name", Message: "ordered_name must not exceed 100 characters"}
	}
	if !req.OrderedUnitPrice.IsPositive() {
		return ValidationError{Field: "ordered_unit_price", Message: "ordered_unit_price must be a positive number"}
	}
	if req.Quantity < 0 {
		return ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	return nil
}

// UpdateTotalRequest represents the update-total request body
type UpdateTotalRequest struct {
	TotalPrice *decimal.Decimal `json:"total_price"`
}

// Validate checks that the supplied total is present and non-negative
func (req *UpdateTotalRequest) Validate() error {
	if req.TotalPrice == nil {
		return ValidationError{Field: "total_price", Message: "total_price is required"}
	}
	if req.TotalPrice.IsNegative() {
		return ValidationError{Field: "total_price", Message: "total_price must not be negative"}
	}
	return nil
}

// OrderTotals holds the derived display values for an order
type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Tip      decimal.Decimal `json:"tip"`
	Total    decimal.Decimal `json:"total"`
}
