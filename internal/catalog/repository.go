package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"laundry-pos/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	BulkInsert(ctx context.Context, prices []*ServicePrice) error
	FindByPair(ctx context.Context, itemType ItemType, serviceType ServiceType) (*ServicePrice, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal, updatedAt time.Time) (bool, error)
	List(ctx context.Context) ([]*ServicePrice, error)
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

const insertPriceQuery = `
	INSERT INTO service_prices (id, item_type, service_type, price, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// InsertPrices writes rows through exec, so callers can share an open transaction.
func InsertPrices(ctx context.Context, exec Execer, prices []*ServicePrice) error {
	for _, p := range prices {
		_, err := exec.ExecContext(ctx, insertPriceQuery,
			p.ID,
			string(p.ItemType),
			string(p.ServiceType),
			p.Price,
			p.CreatedAt.UTC(),
			p.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert price %s/%s: %w", p.ItemType, p.ServiceType, err)
		}
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_prices`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count prices: %w", err)
	}
	return n, nil
}

func (r *repository) BulkInsert(ctx context.Context, prices []*ServicePrice) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "BulkInsert"),
		zap.Int("count", len(prices)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := InsertPrices(ctx, tx, prices); err != nil {
		log.Error("bulk insert failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prices: %w", err)
	}

	log.Debug("bulk insert committed")
	return nil
}

func (r *repository) FindByPair(
	ctx context.Context,
	itemType ItemType,
	serviceType ServiceType,
) (*ServicePrice, error) {

	query := `
		SELECT id, item_type, service_type, price, created_at, updated_at
		FROM service_prices
		WHERE item_type = $1 AND service_type = $2
	`

	var p ServicePrice
	err := r.db.QueryRowContext(ctx, query, string(itemType), string(serviceType)).
		Scan(&p.ID, &p.ItemType, &p.ServiceType, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find price: %w", err)
	}

	return &p, nil
}

// UpdatePrice reports whether a row with id existed.
func (r *repository) UpdatePrice(
	ctx context.Context,
	id string,
	price decimal.Decimal,
	updatedAt time.Time,
) (bool, error) {

	res, err := r.db.ExecContext(ctx,
		`UPDATE service_prices SET price = $1, updated_at = $2 WHERE id = $3`,
		price, updatedAt.UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("update price: %w", err)
	}

	rowsAffected, _ := res.RowsAffected()
	return rowsAffected > 0, nil
}

func (r *repository) List(ctx context.Context) ([]*ServicePrice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_type, service_type, price, created_at, updated_at
		FROM service_prices
		ORDER BY item_type ASC, service_type ASC
	`)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()

	var prices []*ServicePrice
	for rows.Next() {
		var p ServicePrice
		if err := rows.Scan(&p.ID, &p.ItemType, &p.ServiceType, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}

	return prices, nil
}
