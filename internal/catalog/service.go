package catalog

import (
	"context"
	"fmt"
	"time"

	"laundry-pos/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the price catalog used by the point of sale.
type Service interface {
	InitializeDefaults(ctx context.Context) error
	GetPrice(ctx context.Context, itemType ItemType, serviceType ServiceType) decimal.Decimal
	UpdatePrice(ctx context.Context, id string, newPrice decimal.Decimal) error
	SetPrice(ctx context.Context, itemType ItemType, serviceType ServiceType, newPrice decimal.Decimal) error
	List(ctx context.Context) ([]*ServicePrice, error)
	PriceMap(ctx context.Context) (map[PriceKey]decimal.Decimal, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// InitializeDefaults seeds the default table when the catalog is empty.
func (s *service) InitializeDefaults(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "InitializeDefaults"),
	)

	existing, err := s.repo.Count(ctx)
	if err != nil {
		log.Error("failed to count prices", zap.Error(err))
		return err
	}
	if existing > 0 {
		log.Debug("catalog already seeded", zap.Int64("rows", existing))
		return nil
	}

	now := s.now()
	prices := make([]*ServicePrice, 0, len(defaultPrices))
	for _, d := range defaultPrices {
		prices = append(prices, &ServicePrice{
			ID:          uuid.NewString(),
			ItemType:    d.item,
			ServiceType: d.service,
			Price:       decimal.NewFromInt(d.price),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.repo.BulkInsert(ctx, prices); err != nil {
		log.Error("failed to seed default prices", zap.Error(err))
		return err
	}

	log.Info("default prices seeded", zap.Int("rows", len(prices)))
	return nil
}

// GetPrice never fails: a missing pair or a storage error yields FallbackPrice.
func (s *service) GetPrice(ctx context.Context, itemType ItemType, serviceType ServiceType) decimal.Decimal {
	p, err := s.repo.FindByPair(ctx, itemType, serviceType)
	if err != nil {
		logger.FromCtx(ctx).Warn("price lookup failed, using fallback",
			zap.String("item_type", string(itemType)),
			zap.String("service_type", string(serviceType)),
			zap.Error(err),
		)
		return FallbackPrice
	}
	if p == nil {
		return FallbackPrice
	}
	return p.Price
}

// UpdatePrice is a no-op when id does not exist.
func (s *service) UpdatePrice(ctx context.Context, id string, newPrice decimal.Decimal) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdatePrice"),
		zap.String("price_id", id),
		zap.String("price", newPrice.String()),
	)

	if newPrice.IsNegative() {
		return ErrNegativePrice
	}

	found, err := s.repo.UpdatePrice(ctx, id, newPrice, s.now())
	if err != nil {
		log.Error("failed to update price", zap.Error(err))
		return err
	}
	if !found {
		log.Warn("price row not found, nothing updated")
		return nil
	}

	log.Info("price updated")
	return nil
}

func (s *service) SetPrice(ctx context.Context, itemType ItemType, serviceType ServiceType, newPrice decimal.Decimal) error {
	if !itemType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidItemType, itemType)
	}
	if !serviceType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidServiceType, serviceType)
	}

	p, err := s.repo.FindByPair(ctx, itemType, serviceType)
	if err != nil {
		return err
	}
	if p == nil {
		logger.FromCtx(ctx).Warn("no price row for pair",
			zap.String("item_type", string(itemType)),
			zap.String("service_type", string(serviceType)),
		)
		return nil
	}

	return s.UpdatePrice(ctx, p.ID, newPrice)
}

func (s *service) List(ctx context.Context) ([]*ServicePrice, error) {
	prices, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list prices", zap.Error(err))
		return nil, err
	}
	return prices, nil
}

// PriceMap returns every catalog pair; pairs without a row carry FallbackPrice.
func (s *service) PriceMap(ctx context.Context) (map[PriceKey]decimal.Decimal, error) {
	prices, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[PriceKey]decimal.Decimal, len(ItemTypes)*len(ServiceTypes))
	for _, it := range ItemTypes {
		for _, st := range ServiceTypes {
			m[PriceKey{it, st}] = FallbackPrice
		}
	}
	for _, p := range prices {
		m[PriceKey{p.ItemType, p.ServiceType}] = p.Price
	}
	return m, nil
}
