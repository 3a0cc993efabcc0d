package backup

import (
	"time"

	"laundry-pos/internal/catalog"
	"laundry-pos/internal/order"
)

// Version is the only snapshot format version this package reads or writes.
const Version = "1.0"

// Snapshot is the full persisted state: every order with its items and
// every price row.
type Snapshot struct {
	Orders        []*order.Order
	ServicePrices []*catalog.ServicePrice
	BackupDate    time.Time
	Version       string
}
