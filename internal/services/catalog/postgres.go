package catalog

import (
	"context"
	"fmt"

	"github.com/ClaudioCeppi83/gastro-app/internal/database"
	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

// Repository provides access to the menu catalog tables
type Repository struct {
	db *database.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// GetCategories returns all menu categories
func (r *Repository) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, database.GetCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.CategoryID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetMenu returns all dishes joined with their category names
func (r *Repository) GetMenu(ctx context.Context) ([]models.MenuEntry, error) {
	rows, err := r.db.Query(ctx, database.GetMenuSQL)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	menu := []models.MenuEntry{}
	for rows.Next() {
		var e models.MenuEntry
		if err := rows.Scan(&e.DishID, &e.Name, &e.UnitPrice, &e.CategoryID, &e.CategoryName); err != nil {
			return nil, fmt.Errorf("scan menu entry: %w", err)
		}
		menu = append(menu, e)
	}

	return menu, rows.Err()
}

// GetDishes returns all dish rows without the category join
func (r *Repository) GetDishes(ctx context.Context) ([]models.Dish, error) {
	rows, err := r.db.Query(ctx, database.GetDishesSQL)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var d models.Dish
		if err := rows.Scan(&d.DishID, &d.Name, &d.UnitPrice, &d.CategoryID); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}

	return dishes, rows.Err()
}

// CategoryExists reports whether a category id is present
func (r *Repository) CategoryExists(ctx context.Context, categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, database.CategoryExistsSQL, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}

// InsertDish adds a dish to the menu and returns its id
func (r *Repository) InsertDish(ctx context.Context, req *models.AddDishRequest) (int, error) {
	var dishID int
	err := r.db.QueryRow(ctx, database.InsertDishSQL, req.Name, req.CategoryID, req.UnitPrice).Scan(&dishID)
	if err != nil {
		return 0, fmt.Errorf("insert dish: %w", err)
	}
	return dishID, nil
}
