package models

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrLineItemNotFound = errors.New("order item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderCompleted   = errors.New("order is already completed")
)

// ValidationError describes a rejected request field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
