package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
	"github.com/ClaudioCeppi83/gastro-app/internal/models"
	"github.com/ClaudioCeppi83/gastro-app/internal/web"
)

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes registers the catalog routes on the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", web.WithLogging(h.logger, h.GetCategories))
	mux.HandleFunc("GET /menu", web.WithLogging(h.logger, h.GetMenu))
	mux.HandleFunc("GET /dishes", web.WithLogging(h.logger, h.GetDishes))
	mux.HandleFunc("POST /menu/add", web.WithLogging(h.logger, h.AddDish))
}

// GetCategories handles GET /categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		h.logger.Error("categories_fetch_failed", "Failed to fetch categories", "", err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Failed to fetch categories", "")
		return
	}

	web.WriteJSON(w, http.StatusOK, categories)
}

// GetMenu handles GET /menu
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	menu, err := h.service.ListMenu(ctx)
	if err != nil {
		h.logger.Error("menu_fetch_failed", "Failed to fetch menu", "", err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Failed to fetch menu", "")
		return
	}

	web.WriteJSON(w, http.StatusOK, menu)
}

// GetDishes handles GET /dishes
func (h *Handler) GetDishes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dishes, err := h.service.ListDishes(ctx)
	if err != nil {
		h.logger.Error("dishes_fetch_failed", "Failed to fetch dishes", "", err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Failed to fetch dishes", "")
		return
	}

	web.WriteJSON(w, http.StatusOK, dishes)
}

// AddDish handles POST /menu/add
func (h *Handler) AddDish(w http.ResponseWriter, r *http.Request) {
	var req models.AddDishRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dishID, err := h.service.AddDish(ctx, &req)
	if err != nil {
		status := web.StatusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("dish_add_failed", "Failed to add dish", "", err, map[string]interface{}{
				"name": req.Name,
			})
			web.WriteError(w, status, "Failed to add dish", "")
			return
		}
		web.WriteError(w, status, err.Error(), "")
		return
	}

	web.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Dish added successfully",
		"dishId":  dishID,
	})
}
