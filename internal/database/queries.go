package database

// Catalog queries
const (
	GetCategoriesSQL = `
		SELECT category_id, name
		FROM menu_categories
		ORDER BY category_id ASC`

	GetMenuSQL = `
		SELECT d.dish_id, d.name, d.unit_price, mc.category_id, mc.name AS category_name
		FROM dishes d
		JOIN menu_categories mc ON d.category_id = mc.category_id
		ORDER BY mc.category_id, d.name`

	GetDishesSQL = `
		SELECT dish_id, name, unit_price, category_id
		FROM dishes
		ORDER BY dish_id ASC`

	InsertDishSQL = `
		INSERT INTO dishes (name, category_id, unit_price)
		VALUES ($1, $2, $3)
		RETURNING dish_id`

	CategoryExistsSQL = `
		SELECT EXISTS (SELECT 1 FROM menu_categories WHERE category_id = $1)`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (status, total_price, consumption_date)
		VALUES ('open', 0, NOW())
		RETURNING order_id`

	GetOrderStatusSQL = `
		SELECT status FROM orders WHERE order_id = $1`

	CompleteOrderSQL = `
		UPDATE orders SET status = 'completed' WHERE order_id = $1`

	UpdateOrderTotalSQL = `
		UPDATE orders SET total_price = $1 WHERE order_id = $2`

	InsertOrderLineItemSQL = `
		INSERT INTO order_dishes (order_id, dish_id, quantity, ordered_name, ordered_unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING order_dish_id`

	GetOrderLineItemsSQL = `
		SELECT order_dish_id, dish_id, ordered_name, ordered_unit_price, quantity
		FROM order_dishes
		WHERE order_id = $1
		ORDER BY order_dish_id ASC`

	DeleteOrderLineItemSQL = `
		DELETE FROM order_dishes
		WHERE order_dish_id = $1 AND order_id = $2`
)
