package report

import (
	"context"
	"fmt"
	"time"

	"laundry-pos/internal/logger"
	"laundry-pos/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLister is the slice of the order store the aggregator reads from.
type OrderLister interface {
	ListByCreatedRange(ctx context.Context, start, end time.Time) ([]*order.Order, error)
}

type Service interface {
	// DailyReport summarizes the orders created on date's calendar day,
	// in date's location.
	DailyReport(ctx context.Context, date time.Time) (*DailyReport, []*order.Order, error)
}

type service struct {
	orders OrderLister
}

func NewService(orders OrderLister) Service {
	return &service{orders: orders}
}

func (s *service) DailyReport(ctx context.Context, date time.Time) (*DailyReport, []*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DailyReport"),
		zap.String("date", date.Format(DateLayout)),
	)

	start, end := DayWindow(date)
	orders, err := s.orders.ListByCreatedRange(ctx, start, end)
	if err != nil {
		log.Error("failed to load orders for report", zap.Error(err))
		return nil, nil, fmt.Errorf("daily report: %w", err)
	}

	r := Summarize(date, orders)
	log.Info("daily report computed",
		zap.Int("orders", r.TotalOrders),
		zap.String("revenue", r.TotalRevenue.String()),
	)
	return r, orders, nil
}

// DayWindow returns [00:00:00.000, 23:59:59.999] of date's day.
func DayWindow(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), date.Location())
	return start, end
}

// Summarize is a pure function of the given order set.
func Summarize(date time.Time, orders []*order.Order) *DailyReport {
	r := &DailyReport{
		Date:           date.Format(DateLayout),
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[order.Status]int, len(order.Statuses)),
	}
	for _, st := range order.Statuses {
		r.OrdersByStatus[st] = 0
	}

	for _, o := range orders {
		r.TotalOrders++
		r.TotalRevenue = r.TotalRevenue.Add(o.TotalAmount)
		r.PiecesProcessed += o.Pieces()
		if o.Status != order.StatusDelivered {
			r.PendingOrders++
		}
		r.OrdersByStatus[o.Status]++
	}
	return r
}
