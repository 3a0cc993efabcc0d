package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry-pos/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, draft *Draft) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	Get(ctx context.Context, orderID string) (*Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*Order, error)
	ListByPickupDate(ctx context.Context, pickupDate string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
}

type Options struct {
	// StrictStatusFlow only allows moving one step forward along Statuses.
	StrictStatusFlow bool
}

type service struct {
	repo    Repository
	numbers *NumberGenerator
	opts    Options
	now     func() time.Time
}

func NewService(repo Repository, numbers *NumberGenerator, opts Options) Service {
	return &service{
		repo:    repo,
		numbers: numbers,
		opts:    opts,
		now:     time.Now,
	}
}

// PlaceOrder validates the draft, assigns id and number, and stores it.
func (s *service) PlaceOrder(ctx context.Context, draft *Draft) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	if err := draft.Validate(); err != nil {
		log.Warn("draft rejected", zap.Error(err))
		return nil, err
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		log.Error("failed to generate order number", zap.Error(err))
		return nil, err
	}

	now := s.now()
	o := &Order{
		ID:           uuid.NewString(),
		OrderNumber:  number,
		CustomerName: draft.CustomerName,
		PhoneNumber:  draft.PhoneNumber,
		Items:        draft.Items(),
		TotalAmount:  draft.TotalAmount(),
		PickupDate:   draft.PickupDate,
		Status:       StatusReceived,
		Notes:        draft.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.TotalAmount.String()),
	)
	return o, nil
}

// UpdateStatus sets a new status. A missing order is a silent no-op.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if s.opts.StrictStatusFlow {
		current, err := s.repo.GetByID(ctx, orderID)
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn("order not found, nothing updated")
			return nil
		}
		if err != nil {
			return err
		}
		if err := checkTransition(current.Status, status); err != nil {
			log.Warn("transition rejected", zap.String("from", string(current.Status)))
			return err
		}
	}

	found, err := s.repo.UpdateStatus(ctx, orderID, status, s.now())
	if err != nil {
		log.Error("failed to update status", zap.Error(err))
		return err
	}
	if !found {
		log.Warn("order not found, nothing updated")
		return nil
	}

	log.Info("order status updated")
	return nil
}

func checkTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if next, ok := from.Next(); ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetByNumber(ctx, orderNumber)
}

func (s *service) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *service) ListByDateRange(ctx context.Context, start, end time.Time) ([]*Order, error) {
	return s.repo.ListByCreatedRange(ctx, start, end)
}

func (s *service) ListByPickupDate(ctx context.Context, pickupDate string) ([]*Order, error) {
	return s.repo.ListByPickupDate(ctx, pickupDate)
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}
