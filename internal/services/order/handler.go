package order

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
	"github.com/ClaudioCeppi83/gastro-app/internal/models"
	"github.com/ClaudioCeppi83/gastro-app/internal/web"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes registers the order routes on the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders/create", web.WithLogging(h.logger, h.CreateOrder))
	mux.HandleFunc("PUT /orders/{orderId}/complete", web.WithLogging(h.logger, h.CompleteOrder))
	mux.HandleFunc("PUT /orders/{orderId}/update-total", web.WithLogging(h.logger, h.UpdateTotal))
	mux.HandleFunc("GET /orders/{orderId}/items", web.WithLogging(h.logger, h.GetItems))
	mux.HandleFunc("POST /orders/{orderId}/items/add", web.WithLogging(h.logger, h.AddItems))
	mux.HandleFunc("DELETE /orders/{orderId}/items/{orderDishId}/delete", web.WithLogging(h.logger, h.RemoveItem))
	mux.HandleFunc("GET /orders/{orderId}/totals", web.WithLogging(h.logger, h.GetTotals))
	mux.HandleFunc("GET /orders/{orderId}/suggestions", web.WithLogging(h.logger, h.GetSuggestions))
	mux.HandleFunc("GET /health", web.WithLogging(h.logger, h.HealthCheck))
}

// lineItemView is the wire shape of one line in the items listing
type lineItemView struct {
	DishID      int    `json:"dish_id"`
	OrderedName string `json:"ordered_name"`
	Quantity    int    `json:"quantity"`
	OrderDishID int    `json:"order_dish_id"`
}

// CreateOrder handles POST /orders/create
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := h.service.Create(ctx)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", "", err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Failed to create order", "")
		return
	}

	web.WriteJSON(w, http.StatusCreated, map[string]interface{}{"orderId": orderID})
}

// CompleteOrder handles PUT /orders/{orderId}/complete
func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Complete(ctx, orderID); err != nil {
		h.writeServiceError(w, err, "order_completion_failed", "Failed to complete order")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Order completed successfully"})
}

// UpdateTotal handles PUT /orders/{orderId}/update-total
func (h *Handler) UpdateTotal(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.UpdateTotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid total price", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.UpdateTotal(ctx, orderID, &req); err != nil {
		h.writeServiceError(w, err, "total_update_failed", "Failed to update order total price")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Order total price updated successfully"})
}

// GetItems handles GET /orders/{orderId}/items
func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.service.ListItems(ctx, orderID)
	if err != nil {
		h.writeServiceError(w, err, "items_fetch_failed", "Failed to fetch order items")
		return
	}

	views := make([]lineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, lineItemView{
			DishID:      item.DishID,
			OrderedName: item.OrderedName,
			Quantity:    item.Quantity,
			OrderDishID: item.OrderDishID,
		})
	}

	web.WriteJSON(w, http.StatusOK, views)
}

// AddItems handles POST /orders/{orderId}/items/add. The body is an
// array of line items; only the first element is processed, matching
// the client contract of one call per added line.
func (h *Handler) AddItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var items []models.AddLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body. Expected an array of order items.", "")
		return
	}
	if len(items) == 0 {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body. Expected an array of order items.", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.service.AddItem(ctx, orderID, &items[0]); err != nil {
		h.writeServiceError(w, err, "item_add_failed", "Failed to add item to order")
		return
	}

	web.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "Item added to order successfully"})
}

// RemoveItem handles DELETE /orders/{orderId}/items/{orderDishId}/delete
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	orderDishID, err := strconv.Atoi(r.PathValue("orderDishId"))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid order ID or order item ID", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.RemoveItem(ctx, orderID, orderDishID); err != nil {
		h.writeServiceError(w, err, "item_remove_failed", "Failed to delete order item")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Order item deleted successfully"})
}

// GetTotals handles GET /orders/{orderId}/totals. An optional tip
// query parameter supplies a flat tip amount overriding the configured
// tip rate.
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	flatTip := decimal.Zero
	if tip := r.URL.Query().Get("tip"); tip != "" {
		parsed, err := decimal.NewFromString(tip)
		if err != nil || parsed.IsNegative() {
			web.WriteError(w, http.StatusBadRequest, "Invalid tip amount", "")
			return
		}
		flatTip = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	totals, err := h.service.Totals(ctx, orderID, flatTip)
	if err != nil {
		h.writeServiceError(w, err, "totals_fetch_failed", "Failed to compute order totals")
		return
	}

	web.WriteJSON(w, http.StatusOK, totals)
}

// GetSuggestions handles GET /orders/{orderId}/suggestions
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	suggested, err := h.service.Suggestions(ctx, orderID)
	if err != nil {
		h.writeServiceError(w, err, "suggestions_fetch_failed", "Failed to fetch suggestions")
		return
	}

	web.WriteJSON(w, http.StatusOK, suggested)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gastro-app",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	web.WriteJSON(w, status, response)
}

// orderIDFromPath parses the orderId path segment, writing a 400 when
// it is not a valid integer
func (h *Handler) orderIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	orderID, err := strconv.Atoi(r.PathValue("orderId"))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid order ID", "")
		return 0, false
	}
	return orderID, true
}

// writeServiceError maps a service error to its HTTP response. 5xx
// causes are logged with context; the client sees a generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, action, message string) {
	status := web.StatusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(action, message, "", err, nil)
		web.WriteError(w, status, message, "")
		return
	}
	web.WriteError(w, status, err.Error(), "")
}
