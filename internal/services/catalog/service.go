package catalog

import (
	"context"
	"fmt"

	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

// Service implements the menu catalog operations
type Service struct {
	repo   *Repository
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// ListCategories returns all menu categories
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetCategories(ctx)
}

// ListMenu returns all dishes with their category names
func (s *Service) ListMenu(ctx context.Context) ([]models.MenuEntry, error) {
	return s.repo.GetMenu(ctx)
}

// ListDishes returns all dish rows
func (s *Service) ListDishes(ctx context.Context) ([]models.Dish, error) {
	return s.repo.GetDishes(ctx)
}

// AddDish validates and inserts a new dish, returning its id
func (s *Service) AddDish(ctx context.Context, req *models.AddDishRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("validate dish: %w", err)
	}

	exists, err := s.repo.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("category %d: %w", req.CategoryID, models.ErrCategoryNotFound)
	}

	dishID, err := s.repo.InsertDish(ctx, req)
	if err != nil {
		return 0, err
	}

	s.logger.Info("dish_added", fmt.Sprintf("Added dish %q to the menu", req.Name), "", map[string]interface{}{
		"dish_id":     dishID,
		"category_id": req.CategoryID,
	})

	return dishID, nil
}
