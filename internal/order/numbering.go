package order

import (
	"context"
	"fmt"
	"time"
)

type NumberCounter interface {
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

// NumberGenerator derives order numbers of the form YYMMDD-NNNN. The sequence
// is the count of same-day orders plus one, so it restarts every day and is
// only collision-free with a single writer.
type NumberGenerator struct {
	counter NumberCounter
	now     func() time.Time
}

// NewNumberGenerator uses time.Now when now is nil.
func NewNumberGenerator(counter NumberCounter, now func() time.Time) *NumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &NumberGenerator{counter: counter, now: now}
}

func DatePrefix(t time.Time) string {
	return t.Format("060102")
}

func (g *NumberGenerator) Next(ctx context.Context) (string, error) {
	prefix := DatePrefix(g.now())

	count, err := g.counter.CountByNumberPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}

	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
