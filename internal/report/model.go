package report

import (
	"laundry-pos/internal/order"

	"github.com/shopspring/decimal"
)

// DateLayout is how a report date is rendered.
const DateLayout = "2006-01-02"

type DailyReport struct {
	Date            string
	TotalRevenue    decimal.Decimal
	TotalOrders     int
	PendingOrders   int
	PiecesProcessed int
	// OrdersByStatus always carries a key for every status, zero or not.
	OrdersByStatus map[order.Status]int
}
