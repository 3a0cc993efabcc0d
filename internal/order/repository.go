package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry-pos/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, orderID string, status Status, updatedAt time.Time) (bool, error)
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)
	ListByCreatedRange(ctx context.Context, start, end time.Time) ([]*Order, error)
	ListByPickupDate(ctx context.Context, pickupDate string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.order_number, o.customer_name, o.phone_number, o.total_amount,
	o.pickup_date, o.status, o.notes, o.created_at, o.updated_at
`

// itemsBatch bounds the number of ids per IN (...) lookup.
const itemsBatch = 500

// InsertOrder writes the order row and its items through exec.
func InsertOrder(ctx context.Context, exec Execer, o *Order) error {
	_, err := exec.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, customer_name, phone_number, total_amount,
			pickup_date, status, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		o.ID,
		o.OrderNumber,
		o.CustomerName,
		o.PhoneNumber,
		o.TotalAmount,
		o.PickupDate,
		string(o.Status),
		o.Notes,
		o.CreatedAt.UTC(),
		o.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.OrderNumber, err)
	}

	for i, item := range o.Items {
		_, err = exec.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, position, item_type, service_type, unit_price, quantity
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			o.ID,
			i,
			string(item.ItemType),
			string(item.ServiceType),
			item.UnitPrice,
			item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert item %d of order %s: %w", i, o.OrderNumber, err)
		}
	}

	return nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_number", o.OrderNumber),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := InsertOrder(ctx, tx, o); err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return fmt.Errorf("commit order: %w", err)
	}

	log.Debug("order inserted", zap.Int("items", len(o.Items)))
	return nil
}

// UpdateStatus reports whether an order with orderID existed.
func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status, updatedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), updatedAt.UTC(), orderID,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	return rowsAffected > 0, nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	return r.getOne(ctx, "o.id = $1", orderID)
}

func (r *repository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return r.getOne(ctx, "o.order_number = $1", orderNumber)
}

func (r *repository) getOne(ctx context.Context, where string, arg any) (*Order, error) {
	orders, err := r.query(ctx, where, arg)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *repository) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	return r.query(ctx, "o.status = $1", string(status))
}

// ListByCreatedRange is inclusive on both ends.
func (r *repository) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]*Order, error) {
	return r.query(ctx, "o.created_at >= $1 AND o.created_at <= $2", start.UTC(), end.UTC())
}

func (r *repository) ListByPickupDate(ctx context.Context, pickupDate string) ([]*Order, error) {
	return r.query(ctx, "o.pickup_date = $1", pickupDate)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.query(ctx, "")
}

func (r *repository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE order_number LIKE $1`, prefix+"%",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by prefix: %w", err)
	}
	return n, nil
}

// query loads orders matching where, newest first, with items attached.
func (r *repository) query(ctx context.Context, where string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "query"),
		zap.String("where", where),
	)

	query := "SELECT " + orderColumns + " FROM orders o"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY o.created_at DESC, o.order_number DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	byID := map[string]*Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.CustomerName,
			&o.PhoneNumber,
			&o.TotalAmount,
			&o.PickupDate,
			&o.Status,
			&o.Notes,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, orders, byID); err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}

	log.Debug("orders loaded", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, orders []*Order, byID map[string]*Order) error {
	for start := 0; start < len(orders); start += itemsBatch {
		end := min(start+itemsBatch, len(orders))

		placeholders := make([]string, 0, end-start)
		args := make([]any, 0, end-start)
		for i, o := range orders[start:end] {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
			args = append(args, o.ID)
		}

		query := fmt.Sprintf(`
			SELECT order_id, item_type, service_type, unit_price, quantity
			FROM order_items
			WHERE order_id IN (%s)
			ORDER BY order_id, position
		`, strings.Join(placeholders, ","))

		if err := r.scanItems(ctx, query, args, byID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) scanItems(ctx context.Context, query string, args []any, byID map[string]*Order) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item OrderItem
		if err := rows.Scan(&orderID, &item.ItemType, &item.ServiceType, &item.UnitPrice, &item.Quantity); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o, ok := byID[orderID]
		if !ok {
			return errors.New("order item references unknown order " + orderID)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
