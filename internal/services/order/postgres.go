package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ClaudioCeppi83/gastro-app/internal/database"
	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

// Repository provides access to the orders and order_dishes tables
type Repository struct {
	db *database.DB
}

// NewRepository creates a new order repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// InsertOrder creates a new open order and returns its id
func (r *Repository) InsertOrder(ctx context.Context) (int, error) {
	var orderID int
	err := r.db.QueryRow(ctx, database.InsertOrderSQL).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return orderID, nil
}

// GetOrderStatus returns the status of an order, or ErrOrderNotFound
func (r *Repository) GetOrderStatus(ctx context.Context, orderID int) (models.OrderStatus, error) {
	var status models.OrderStatus
	err := r.db.QueryRow(ctx, database.GetOrderStatusSQL, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("order %d: %w", orderID, models.ErrOrderNotFound)
		}
		return "", fmt.Errorf("get order status: %w", err)
	}
	return status, nil
}

// CompleteOrder marks an order completed
func (r *Repository) CompleteOrder(ctx context.Context, orderID int) error {
	_, err := r.db.Exec(ctx, database.CompleteOrderSQL, orderID)
	if err != nil {
		return fmt.Errorf("complete order: %w", err)
	}
	return nil
}

// UpdateOrderTotal overwrites the persisted total snapshot
func (r *Repository) UpdateOrderTotal(ctx context.Context, orderID int, total decimal.Decimal) error {
	_, err := r.db.Exec(ctx, database.UpdateOrderTotalSQL, total, orderID)
	if err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return nil
}

// InsertLineItem appends a line row with the snapshot values and
// returns the new order_dish_id
func (r *Repository) InsertLineItem(ctx context.Context, orderID int, req *models.AddLineItemRequest) (int, error) {
	var orderDishID int
	err := r.db.QueryRow(ctx, database.InsertOrderLineItemSQL,
		orderID, req.DishID, req.Quantity, req.OrderedName, req.OrderedUnitPrice).Scan(&orderDishID)
	if err != nil {
		return 0, fmt.Errorf("insert line item: %w", err)
	}
	return orderDishID, nil
}

// GetLineItems returns the order's line items in insertion order
func (r *Repository) GetLineItems(ctx context.Context, orderID int) ([]models.OrderLineItem, error) {
	rows, err := r.db.Query(ctx, database.GetOrderLineItemsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderLineItem{}
	for rows.Next() {
		var item models.OrderLineItem
		if err := rows.Scan(&item.OrderDishID, &item.DishID, &item.OrderedName, &item.OrderedUnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		item.OrderID = orderID
		items = append(items, item)
	}

	return items, rows.Err()
}

// DeleteLineItem deletes the row matching both the order and line ids,
// returning how many rows were removed
func (r *Repository) DeleteLineItem(ctx context.Context, orderID, orderDishID int) (int64, error) {
	affected, err := r.db.Exec(ctx, database.DeleteOrderLineItemSQL, orderDishID, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete line item: %w", err)
	}
	return affected, nil
}

// Ping checks database reachability
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
