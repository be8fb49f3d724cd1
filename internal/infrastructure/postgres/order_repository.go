package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Clave compuesta (user_id, order_id); items y shipping se guardan como JSONB.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de persistencia de órdenes.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create escribe el registro completo de la orden una sola vez.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("encode shipping: %w", err)
	}
	query := `
		INSERT INTO orders (user_id, order_id, items, shipping, total, status, created_at, time_of_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.pool.Exec(ctx, query,
		order.UserID, order.OrderID, items, shipping, order.Total,
		string(order.Status), order.CreatedAt, order.Time,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID devuelve la orden o nil si la clave no existe.
func (r *OrderRepo) GetByID(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	query := `
		SELECT user_id, order_id, items, shipping, total, status, created_at, time_of_day
		FROM orders WHERE user_id = $1 AND order_id = $2`
	order, err := scanOrder(r.pool.QueryRow(ctx, query, userID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListByUser órdenes de un usuario.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := `
		SELECT user_id, order_id, items, shipping, total, status, created_at, time_of_day
		FROM orders WHERE user_id = $1`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListAll scan completo del store. Sin ORDER BY a propósito: el contrato no
// garantiza orden y la vista consumidora ordena por su cuenta.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT user_id, order_id, items, shipping, total, status, created_at, time_of_day
		FROM orders`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatus actualiza únicamente el campo status del registro.
func (r *OrderRepo) UpdateStatus(ctx context.Context, userID, orderID string, status entity.OrderStatus) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $3 WHERE user_id = $1 AND order_id = $2`,
		userID, orderID, string(status),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o        entity.Order
		items    []byte
		shipping []byte
		status   string
	)
	if err := row.Scan(&o.UserID, &o.OrderID, &items, &shipping, &o.Total, &status, &o.CreatedAt, &o.Time); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
		return nil, fmt.Errorf("decode shipping: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
