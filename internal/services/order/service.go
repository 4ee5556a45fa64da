package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ClaudioCeppi83/gastro-app/internal/billing"
	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
	"github.com/ClaudioCeppi83/gastro-app/internal/messaging"
	"github.com/ClaudioCeppi83/gastro-app/internal/models"
	"github.com/ClaudioCeppi83/gastro-app/internal/suggestions"
)

// Store is the persistence surface the order service depends on
type Store interface {
	InsertOrder(ctx context.Context) (int, error)
	GetOrderStatus(ctx context.Context, orderID int) (models.OrderStatus, error)
	CompleteOrder(ctx context.Context, orderID int) error
	UpdateOrderTotal(ctx context.Context, orderID int, total decimal.Decimal) error
	InsertLineItem(ctx context.Context, orderID int, req *models.AddLineItemRequest) (int, error)
	GetLineItems(ctx context.Context, orderID int) ([]models.OrderLineItem, error)
	DeleteLineItem(ctx context.Context, orderID, orderDishID int) (int64, error)
	Ping(ctx context.Context) error
}

// Service implements the order lifecycle and line item ledger
type Service struct {
	store      Store
	publisher  *messaging.Publisher
	suggester  *suggestions.Service
	calculator *billing.Calculator
	logger     *logger.Logger
}

// NewService creates a new order service. publisher and suggester may
// be nil when those integrations are disabled.
func NewService(store Store, publisher *messaging.Publisher, suggester *suggestions.Service, calculator *billing.Calculator, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		publisher:  publisher,
		suggester:  suggester,
		calculator: calculator,
		logger:     log,
	}
}

// Create opens a new order and returns its id
func (s *Service) Create(ctx context.Context) (int, error) {
	orderID, err := s.store.InsertOrder(ctx)
	if err != nil {
		return 0, err
	}

	s.publishEvent(messaging.OrderEvent{
		Event:   messaging.EventOrderCreated,
		OrderID: orderID,
	})

	return orderID, nil
}

// Complete marks an order completed. Completing an already completed
// order is a no-op success.
func (s *Service) Complete(ctx context.Context, orderID int) error {
	status, err := s.store.GetOrderStatus(ctx, orderID)
	if err != nil {
		return err
	}
	if status == models.StatusCompleted {
		s.logger.Debug("order_already_completed", fmt.Sprintf("Order %d is already completed", orderID), "", nil)
		return nil
	}

	if err := s.store.CompleteOrder(ctx, orderID); err != nil {
		return err
	}

	s.suggester.Forget(orderID)
	s.publishEvent(messaging.OrderEvent{
		Event:   messaging.EventOrderCompleted,
		OrderID: orderID,
	})

	return nil
}

// UpdateTotal overwrites the persisted display total. This is a
// write-through cache, not a recomputation trigger; the caller is
// responsible for supplying an already-correct value.
func (s *Service) UpdateTotal(ctx context.Context, orderID int, req *models.UpdateTotalRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validate total: %w", err)
	}

	if err := s.requireOpen(ctx, orderID); err != nil {
		return err
	}

	return s.store.UpdateOrderTotal(ctx, orderID, *req.TotalPrice)
}

// AddItem appends a line item with the caller's snapshot values and
// returns the new order_dish_id. The quantity stored is the quantity
// requested (defaulting to 1 when absent).
func (s *Service) AddItem(ctx context.Context, orderID int, req *models.AddLineItemRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("validate line item: %w", err)
	}

	if err := s.requireOpen(ctx, orderID); err != nil {
		return 0, err
	}

	orderDishID, err := s.store.InsertLineItem(ctx, orderID, req)
	if err != nil {
		return 0, err
	}

	s.publishEvent(messaging.OrderEvent{
		Event:       messaging.EventItemAdded,
		OrderID:     orderID,
		OrderDishID: orderDishID,
		DishName:    req.OrderedName,
		Quantity:    req.Quantity,
	})
	s.refreshSuggestions(orderID)

	return orderDishID, nil
}

// ListItems returns the order's line items in insertion order
func (s *Service) ListItems(ctx context.Context, orderID int) ([]models.OrderLineItem, error) {
	if _, err := s.store.GetOrderStatus(ctx, orderID); err != nil {
		return nil, err
	}
	return s.store.GetLineItems(ctx, orderID)
}

// RemoveItem deletes exactly the line matching both the order and the
// line id. Removing a line that does not exist is an error, so stale
// clients can detect they are out of date.
func (s *Service) RemoveItem(ctx context.Context, orderID, orderDishID int) error {
	if err := s.requireOpen(ctx, orderID); err != nil {
		return err
	}

	affected, err := s.store.DeleteLineItem(ctx, orderID, orderDishID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %d item %d: %w", orderID, orderDishID, models.ErrLineItemNotFound)
	}

	s.publishEvent(messaging.OrderEvent{
		Event:       messaging.EventItemRemoved,
		OrderID:     orderID,
		OrderDishID: orderDishID,
	})
	s.refreshSuggestions(orderID)

	return nil
}

// Totals derives the live display totals from the current line items.
// flatTip, when positive, overrides the configured tip rate.
func (s *Service) Totals(ctx context.Context, orderID int, flatTip decimal.Decimal) (models.OrderTotals, error) {
	if _, err := s.store.GetOrderStatus(ctx, orderID); err != nil {
		return models.OrderTotals{}, err
	}

	items, err := s.store.GetLineItems(ctx, orderID)
	if err != nil {
		return models.OrderTotals{}, err
	}

	return s.calculator.Totals(items, flatTip), nil
}

// Suggestions returns complementary product suggestions for the
// order's current items. Cached results are preferred; a live call is
// made only when nothing is cached yet. Failures degrade to an empty
// list and are never returned to the caller.
func (s *Service) Suggestions(ctx context.Context, orderID int) ([]suggestions.Suggestion, error) {
	if _, err := s.store.GetOrderStatus(ctx, orderID); err != nil {
		return nil, err
	}

	if cached, ok := s.suggester.Cached(orderID); ok {
		return cached, nil
	}

	items, err := s.store.GetLineItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	suggested, err := s.suggester.Suggest(ctx, itemSummaries(items))
	if err != nil {
		s.logger.Warn("suggestions_failed", "Suggestion call failed, returning empty list", "", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return []suggestions.Suggestion{}, nil
	}

	return suggested, nil
}

// HealthCheck reports whether the backing store is reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

// requireOpen fails with ErrOrderNotFound or ErrOrderCompleted unless
// the order exists and is still open
func (s *Service) requireOpen(ctx context.Context, orderID int) error {
	status, err := s.store.GetOrderStatus(ctx, orderID)
	if err != nil {
		return err
	}
	if status == models.StatusCompleted {
		return fmt.Errorf("order %d: %w", orderID, models.ErrOrderCompleted)
	}
	return nil
}

// publishEvent sends an order event to the kitchen display feed
// without blocking or failing the mutation that produced it
func (s *Service) publishEvent(event messaging.OrderEvent) {
	if s.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			s.logger.Warn("event_publish_failed", "Failed to publish order event", "", map[string]interface{}{
				"event":    event.Event,
				"order_id": event.OrderID,
				"error":    err.Error(),
			})
		}
	}()
}

// refreshSuggestions re-reads the order's items in the background and
// refreshes the suggestion cache
func (s *Service) refreshSuggestions(orderID int) {
	if s.suggester == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		items, err := s.store.GetLineItems(ctx, orderID)
		if err != nil {
			s.logger.Warn("suggestions_refresh_failed", "Failed to read items for suggestion refresh", "", map[string]interface{}{
				"order_id": orderID,
				"error":    err.Error(),
			})
			return
		}

		s.suggester.Refresh(orderID, itemSummaries(items))
	}()
}

func itemSummaries(items []models.OrderLineItem) []suggestions.OrderItemSummary {
	summaries := make([]suggestions.OrderItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, suggestions.OrderItemSummary{
			ProductName: item.OrderedName,
			Quantity:    item.Quantity,
		})
	}
	return summaries
}
