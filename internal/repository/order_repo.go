package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/paatih-qee/langspeed-motor/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// CreateOrder inserts the order header, its lines and the product stock
// decrements in one transaction. Any failure rolls the whole order back,
// so a missing product never leaves a header without lines or lines
// without their stock adjustment.
func (r *postgresOrderRepository) CreateOrder(order *domain.Order) (created *domain.Order, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Recovered from panic, rolling back transaction")
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.log.Warnf("Rolling back order transaction due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit order transaction: %v", cErr)
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	orderQuery := `
        INSERT INTO orders (order_number, customer_name, customer_phone, vehicle_type, plate_number, complaint, total_amount, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	err = tx.QueryRow(orderQuery,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerPhone,
		order.VehicleType,
		order.PlateNumber,
		order.Complaint,
		order.TotalAmount,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Duplicate order number %s", order.OrderNumber)
			return nil, fmt.Errorf("order number %s already exists", order.OrderNumber)
		}
		r.log.Errorf("Failed to insert order %s: %v", order.OrderNumber, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}
	r.log.Infof("Order entry created with ID: %d, number: %s", order.ID, order.OrderNumber)

	lineQuery := `
        INSERT INTO order_lines (order_id, item_id, item_name, item_kind, quantity, price, subtotal)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	stmt, err := tx.Prepare(lineQuery)
	if err != nil {
		r.log.Errorf("Failed to prepare order line statement: %v", err)
		return nil, fmt.Errorf("could not prepare line statement: %w", err)
	}
	defer stmt.Close()

	// Floored conditional decrement: one statement both proves the product
	// exists and adjusts stock, so concurrent orders cannot interleave a
	// read-then-write and drive stock negative.
	stockQuery := `
        UPDATE products
        SET stock = GREATEST(stock - $1, 0)
        WHERE product_id = $2
    `

	for i := range order.Lines {
		line := &order.Lines[i]
		_, err = stmt.Exec(order.ID, line.ItemID, line.ItemName, line.ItemKind, line.Quantity, line.Price, line.Subtotal)
		if err != nil {
			r.log.Errorf("Failed to insert order line (item: %s) for order %d: %v", line.ItemID, order.ID, err)
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
				return nil, fmt.Errorf("invalid line data (item: %s): %s", line.ItemID, pqErr.Message)
			}
			return nil, fmt.Errorf("could not create order line (item: %s): %w", line.ItemID, err)
		}

		if line.ItemKind != domain.ItemKindProduct {
			continue
		}

		var result sql.Result
		result, err = tx.Exec(stockQuery, line.Quantity, line.ItemID)
		if err != nil {
			r.log.Errorf("Failed to decrement stock for product %s (order %d): %v", line.ItemID, order.ID, err)
			return nil, fmt.Errorf("could not decrement stock for product %s: %w", line.ItemID, err)
		}
		var rowsAffected int64
		rowsAffected, err = result.RowsAffected()
		if err != nil {
			r.log.Errorf("Failed to get rows affected for stock decrement of product %s: %v", line.ItemID, err)
			return nil, fmt.Errorf("could not confirm stock decrement: %w", err)
		}
		if rowsAffected == 0 {
			r.log.Warnf("Product %s referenced by order %d not found, aborting order", line.ItemID, order.ID)
			err = fmt.Errorf("product with id %s not found", line.ItemID)
			return nil, err
		}
		r.log.Infof("Stock decremented by %d for product %s (order %d)", line.Quantity, line.ItemID, order.ID)
	}

	r.log.Infof("Order %d created successfully with %d lines.", order.ID, len(order.Lines))
	return order, err
}

func (r *postgresOrderRepository) GetOrderByID(id int) (*domain.Order, error) {
	order := &domain.Order{}
	orderQuery := `
        SELECT id, order_number, customer_name, customer_phone, vehicle_type, plate_number, complaint, total_amount, status, created_at
        FROM orders
        WHERE id = $1
    `
	err := r.db.QueryRow(orderQuery, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.VehicleType,
		&order.PlateNumber,
		&order.Complaint,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %d not found", id)
			return nil, fmt.Errorf("order with id %d not found", id)
		}
		r.log.Errorf("Failed to get order by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	lines, err := r.getOrderLines(id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	r.log.Infof("Order %d retrieved successfully with %d lines.", order.ID, len(order.Lines))
	return order, nil
}

func (r *postgresOrderRepository) getOrderLines(orderID int) ([]domain.OrderLine, error) {
	linesQuery := `
        SELECT item_id, item_name, item_kind, quantity, price, subtotal
        FROM order_lines
        WHERE order_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(linesQuery, orderID)
	if err != nil {
		r.log.Errorf("Failed to query order lines for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ItemID, &line.ItemName, &line.ItemKind, &line.Quantity, &line.Price, &line.Subtotal); err != nil {
			r.log.Errorf("Failed to scan order line row for order ID %d: %v", orderID, err)
			return nil, fmt.Errorf("error scanning order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during order lines iteration for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return lines, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1
        WHERE id = $2
        RETURNING id, order_number, customer_name, customer_phone, vehicle_type, plate_number, complaint, total_amount, status, created_at
    `
	updatedOrder := &domain.Order{}

	err := r.db.QueryRow(query, status, id).Scan(
		&updatedOrder.ID,
		&updatedOrder.OrderNumber,
		&updatedOrder.CustomerName,
		&updatedOrder.CustomerPhone,
		&updatedOrder.VehicleType,
		&updatedOrder.PlateNumber,
		&updatedOrder.Complaint,
		&updatedOrder.TotalAmount,
		&updatedOrder.Status,
		&updatedOrder.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %d not found for status update", id)
			return nil, fmt.Errorf("order with id %d not found for update", id)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Invalid status value '%s' for order ID %d: %v", status, id, err)
			return nil, fmt.Errorf("invalid order status provided: %s", status)
		}
		r.log.Errorf("Failed to update status for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	lines, err := r.getOrderLines(id)
	if err != nil {
		return nil, fmt.Errorf("order status updated, but failed to retrieve lines: %w", err)
	}
	updatedOrder.Lines = lines

	r.log.Infof("Status updated to '%s' for order %d.", updatedOrder.Status, updatedOrder.ID)
	return updatedOrder, nil
}

func (r *postgresOrderRepository) ListOrders(status domain.OrderStatus) ([]domain.Order, error) {
	ordersQuery := `
        SELECT id, order_number, customer_name, customer_phone, vehicle_type, plate_number, complaint, total_amount, status, created_at
        FROM orders
        ORDER BY created_at DESC
    `
	args := []interface{}{}
	if status != "" {
		ordersQuery = `
        SELECT id, order_number, customer_name, customer_phone, vehicle_type, plate_number, complaint, total_amount, status, created_at
        FROM orders
        WHERE status = $1
        ORDER BY created_at DESC
    `
		args = append(args, status)
	}

	rows, err := r.db.Query(ordersQuery, args...)
	if err != nil {
		r.log.Errorf("Failed to list orders: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	orderIDs := []int{}

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CustomerName,
			&order.CustomerPhone,
			&order.VehicleType,
			&order.PlateNumber,
			&order.Complaint,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			r.log.Errorf("Failed to scan order row: %v", err)
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during orders iteration: %v", err)
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	linesQuery := `
        SELECT order_id, item_id, item_name, item_kind, quantity, price, subtotal
        FROM order_lines
        WHERE order_id = ANY($1::int[])
        ORDER BY order_id, id
    `
	lineRows, err := r.db.Query(linesQuery, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Failed to query lines for multiple orders (%v): %v", orderIDs, err)
		return nil, fmt.Errorf("could not retrieve order lines for list: %w", err)
	}
	defer lineRows.Close()

	linesMap := make(map[int][]domain.OrderLine)
	for lineRows.Next() {
		var line domain.OrderLine
		var orderID int
		if err := lineRows.Scan(&orderID, &line.ItemID, &line.ItemName, &line.ItemKind, &line.Quantity, &line.Price, &line.Subtotal); err != nil {
			r.log.Errorf("Failed to scan order line row during multi-order fetch: %v", err)
			return nil, fmt.Errorf("error scanning order line data for list: %w", err)
		}
		linesMap[orderID] = append(linesMap[orderID], line)
	}
	if err = lineRows.Err(); err != nil {
		r.log.Errorf("Error during multi-order lines iteration: %v", err)
		return nil, fmt.Errorf("error iterating order lines for list: %w", err)
	}

	for i := range orders {
		if lines, ok := linesMap[orders[i].ID]; ok {
			orders[i].Lines = lines
		} else {
			orders[i].Lines = []domain.OrderLine{}
		}
	}

	r.log.Infof("Retrieved %d orders", len(orders))
	return orders, nil
}
