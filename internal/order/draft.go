package order

import (
	"fmt"
	"strings"
	"time"

	"laundry-pos/internal/catalog"

	"github.com/shopspring/decimal"
)

// Draft is an order being assembled at the counter. Nothing is stored until
// it is handed to Service.PlaceOrder.
type Draft struct {
	CustomerName string
	PhoneNumber  string
	PickupDate   string
	Notes        string

	items []OrderItem
	total decimal.Decimal
}

func NewDraft(today time.Time) *Draft {
	d := &Draft{}
	d.Reset(today)
	return d
}

// Reset clears the draft; the pickup date defaults to today.
func (d *Draft) Reset(today time.Time) {
	*d = Draft{
		PickupDate: today.Format(PickupDateLayout),
		total:      decimal.Zero,
	}
}

// AddQuickItem appends one piece priced at unitPrice.
func (d *Draft) AddQuickItem(itemType catalog.ItemType, serviceType catalog.ServiceType, unitPrice decimal.Decimal) {
	d.items = append(d.items, OrderItem{
		ItemType:    itemType,
		ServiceType: serviceType,
		UnitPrice:   unitPrice,
		Quantity:    1,
	})
	d.recompute()
}

func (d *Draft) RemoveItem(index int) {
	if index < 0 || index >= len(d.items) {
		return
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	d.recompute()
}

// UpdateQuantity adds delta to the item's quantity, never going below 1.
func (d *Draft) UpdateQuantity(index, delta int) {
	if index < 0 || index >= len(d.items) {
		return
	}
	d.items[index].Quantity = max(1, d.items[index].Quantity+delta)
	d.recompute()
}

func (d *Draft) recompute() {
	d.total = SumItems(d.items)
}

func (d *Draft) Items() []OrderItem {
	out := make([]OrderItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) TotalAmount() decimal.Decimal {
	return d.total
}

// Validate checks the fields required before an order may be created.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if strings.TrimSpace(d.PhoneNumber) == "" {
		return fmt.Errorf("%w: phone number is required", ErrValidation)
	}
	if len(d.items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	if _, err := time.Parse(PickupDateLayout, d.PickupDate); err != nil {
		return fmt.Errorf("%w: pickup date %q is not YYYY-MM-DD", ErrValidation, d.PickupDate)
	}
	for i, it := range d.items {
		if !it.ItemType.Valid() || !it.ServiceType.Valid() {
			return fmt.Errorf("%w: item %d has unknown type %s/%s", ErrValidation, i+1, it.ItemType, it.ServiceType)
		}
	}
	return nil
}
