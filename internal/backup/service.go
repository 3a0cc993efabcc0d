package backup

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"laundry-pos/internal/catalog"
	"laundry-pos/internal/logger"
	"laundry-pos/internal/order"

	"go.uber.org/zap"
)

type PriceLister interface {
	List(ctx context.Context) ([]*catalog.ServicePrice, error)
}

type OrderLister interface {
	ListAll(ctx context.Context) ([]*order.Order, error)
}

type Service interface {
	Export(ctx context.Context) (*Snapshot, error)
	// Import replaces the whole store with s in one transaction.
	Import(ctx context.Context, s *Snapshot) error
}

type service struct {
	db     *sql.DB
	prices PriceLister
	orders OrderLister
	now    func() time.Time
}

func NewService(db *sql.DB, prices PriceLister, orders OrderLister) Service {
	return &service{
		db:     db,
		prices: prices,
		orders: orders,
		now:    time.Now,
	}
}

func (s *service) Export(ctx context.Context) (*Snapshot, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Export"),
	)

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		log.Error("failed to read orders", zap.Error(err))
		return nil, fmt.Errorf("export orders: %w", err)
	}

	prices, err := s.prices.List(ctx)
	if err != nil {
		log.Error("failed to read prices", zap.Error(err))
		return nil, fmt.Errorf("export prices: %w", err)
	}

	snap := &Snapshot{
		Orders:        orders,
		ServicePrices: prices,
		BackupDate:    s.now().UTC(),
		Version:       Version,
	}

	log.Info("snapshot exported",
		zap.Int("orders", len(orders)),
		zap.Int("prices", len(prices)),
	)
	return snap, nil
}

func (s *service) Import(ctx context.Context, snap *Snapshot) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Import"),
	)

	if err := snap.Validate(); err != nil {
		log.Warn("snapshot rejected", zap.Error(err))
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"order_items", "orders", "service_prices"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Error("failed to clear table", zap.String("table", table), zap.Error(err))
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, o := range snap.Orders {
		if err := order.InsertOrder(ctx, tx, o); err != nil {
			log.Error("failed to restore order", zap.Error(err))
			return err
		}
	}

	if err := catalog.InsertPrices(ctx, tx, snap.ServicePrices); err != nil {
		log.Error("failed to restore prices", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit import", zap.Error(err))
		return fmt.Errorf("commit import: %w", err)
	}

	log.Info("snapshot imported",
		zap.Int("orders", len(snap.Orders)),
		zap.Int("prices", len(snap.ServicePrices)),
	)
	return nil
}
