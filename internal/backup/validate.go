package backup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry-pos/internal/catalog"
	"laundry-pos/internal/order"
)

// Validate checks every row. Import refuses a snapshot that fails it, so
// a bad row never leaves the store half restored.
func (s *Snapshot) Validate() error {
	if s.Version != Version {
		return fmt.Errorf("%w: unsupported version %q", ErrMalformedBackup, s.Version)
	}

	ids := make(map[string]struct{}, len(s.Orders))
	for i, o := range s.Orders {
		if err := validateOrder(o); err != nil {
			return fmt.Errorf("%w: order %d: %v", ErrMalformedBackup, i+1, err)
		}
		if _, dup := ids[o.ID]; dup {
			return fmt.Errorf("%w: duplicate order id %q", ErrMalformedBackup, o.ID)
		}
		ids[o.ID] = struct{}{}
	}

	pairs := make(map[catalog.PriceKey]struct{}, len(s.ServicePrices))
	priceIDs := make(map[string]struct{}, len(s.ServicePrices))
	for i, p := range s.ServicePrices {
		if !p.ItemType.Valid() || !p.ServiceType.Valid() {
			return fmt.Errorf("%w: price %d: unknown pair %s/%s", ErrMalformedBackup, i+1, p.ItemType, p.ServiceType)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("%w: price %d: negative price", ErrMalformedBackup, i+1)
		}
		key := catalog.PriceKey{ItemType: p.ItemType, ServiceType: p.ServiceType}
		if _, dup := pairs[key]; dup {
			return fmt.Errorf("%w: duplicate price for %s/%s", ErrMalformedBackup, p.ItemType, p.ServiceType)
		}
		pairs[key] = struct{}{}
		if _, dup := priceIDs[p.ID]; dup {
			return fmt.Errorf("%w: duplicate price id %q", ErrMalformedBackup, p.ID)
		}
		priceIDs[p.ID] = struct{}{}
	}
	return nil
}

func validateOrder(o *order.Order) error {
	switch {
	case o.ID == "":
		return errors.New("missing id")
	case o.OrderNumber == "":
		return errors.New("missing order number")
	case !o.Status.Valid():
		return fmt.Errorf("unknown status %q", o.Status)
	case strings.TrimSpace(o.CustomerName) == "":
		return errors.New("missing customer name")
	case strings.TrimSpace(o.PhoneNumber) == "":
		return errors.New("missing phone number")
	case len(o.Items) == 0:
		return errors.New("no items")
	case o.CreatedAt.IsZero():
		return errors.New("missing createdAt")
	case o.UpdatedAt.IsZero():
		return errors.New("missing updatedAt")
	}

	if _, err := time.Parse(order.PickupDateLayout, o.PickupDate); err != nil {
		return fmt.Errorf("pickup date %q is not YYYY-MM-DD", o.PickupDate)
	}

	for j, it := range o.Items {
		if !it.ItemType.Valid() || !it.ServiceType.Valid() {
			return fmt.Errorf("item %d: unknown pair %s/%s", j+1, it.ItemType, it.ServiceType)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("item %d: quantity %d", j+1, it.Quantity)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: negative price", j+1)
		}
	}

	if sum := order.SumItems(o.Items); !sum.Round(2).Equal(o.TotalAmount.Round(2)) {
		return fmt.Errorf("total %s does not match items %s", o.TotalAmount, sum)
	}
	return nil
}
