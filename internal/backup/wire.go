package backup

import (
	"fmt"
	"strings"
	"time"

	"laundry-pos/internal/catalog"
	"laundry-pos/internal/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type wireSnapshot struct {
	Orders        *[]wireOrder `json:"orders"`
	ServicePrices *[]wirePrice `json:"servicePrices"`
	BackupDate    time.Time    `json:"backupDate"`
	Version       string       `json:"version"`
}

type wireOrder struct {
	ID           string     `json:"id"`
	OrderNumber  string     `json:"orderNumber"`
	CustomerName string     `json:"customerName"`
	PhoneNumber  string     `json:"phoneNumber"`
	Items        []wireItem `json:"items"`
	TotalAmount  float64    `json:"totalAmount"`
	PickupDate   string     `json:"pickupDate"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// wireItem keeps the unit price under "price" so older files still load.
type wireItem struct {
	ItemType    string  `json:"itemType"`
	ServiceType string  `json:"serviceType"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type wirePrice struct {
	ID          string    `json:"id"`
	ItemType    string    `json:"itemType"`
	ServiceType string    `json:"serviceType"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toWire(s *Snapshot) wireSnapshot {
	orders := make([]wireOrder, 0, len(s.Orders))
	for _, o := range s.Orders {
		items := make([]wireItem, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, wireItem{
				ItemType:    string(it.ItemType),
				ServiceType: string(it.ServiceType),
				Price:       it.UnitPrice.InexactFloat64(),
				Quantity:    it.Quantity,
			})
		}
		orders = append(orders, wireOrder{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerName: o.CustomerName,
			PhoneNumber:  o.PhoneNumber,
			Items:        items,
			TotalAmount:  o.TotalAmount.InexactFloat64(),
			PickupDate:   o.PickupDate,
			Status:       string(o.Status),
			Notes:        o.Notes,
			CreatedAt:    o.CreatedAt.UTC(),
			UpdatedAt:    o.UpdatedAt.UTC(),
		})
	}

	prices := make([]wirePrice, 0, len(s.ServicePrices))
	for _, p := range s.ServicePrices {
		prices = append(prices, wirePrice{
			ID:          p.ID,
			ItemType:    string(p.ItemType),
			ServiceType: string(p.ServiceType),
			Price:       p.Price.InexactFloat64(),
			CreatedAt:   p.CreatedAt.UTC(),
			UpdatedAt:   p.UpdatedAt.UTC(),
		})
	}

	return wireSnapshot{
		Orders:        &orders,
		ServicePrices: &prices,
		BackupDate:    s.BackupDate.UTC(),
		Version:       s.Version,
	}
}

func fromWire(w wireSnapshot) (*Snapshot, error) {
	if w.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedBackup, w.Version)
	}
	if w.BackupDate.IsZero() {
		return nil, fmt.Errorf("%w: missing backupDate", ErrMalformedBackup)
	}
	if w.Orders == nil {
		return nil, fmt.Errorf("%w: missing orders", ErrMalformedBackup)
	}
	if w.ServicePrices == nil {
		return nil, fmt.Errorf("%w: missing servicePrices", ErrMalformedBackup)
	}

	s := &Snapshot{
		Orders:        make([]*order.Order, 0, len(*w.Orders)),
		ServicePrices: make([]*catalog.ServicePrice, 0, len(*w.ServicePrices)),
		BackupDate:    w.BackupDate,
		Version:       w.Version,
	}

	for _, wo := range *w.Orders {
		o := &order.Order{
			ID:           wo.ID,
			OrderNumber:  wo.OrderNumber,
			CustomerName: wo.CustomerName,
			PhoneNumber:  wo.PhoneNumber,
			Items:        make([]order.OrderItem, 0, len(wo.Items)),
			TotalAmount:  decimal.NewFromFloat(wo.TotalAmount),
			PickupDate:   wo.PickupDate,
			Status:       order.Status(wo.Status),
			Notes:        wo.Notes,
			CreatedAt:    wo.CreatedAt,
			UpdatedAt:    wo.UpdatedAt,
		}
		for _, wi := range wo.Items {
			o.Items = append(o.Items, order.OrderItem{
				ItemType:    catalog.ItemType(wi.ItemType),
				ServiceType: catalog.ServiceType(wi.ServiceType),
				UnitPrice:   decimal.NewFromFloat(wi.Price),
				Quantity:    wi.Quantity,
			})
		}
		s.Orders = append(s.Orders, o)
	}

	for _, wp := range *w.ServicePrices {
		id := wp.ID
		if strings.TrimSpace(id) == "" {
			id = uuid.NewString()
		}
		s.ServicePrices = append(s.ServicePrices, &catalog.ServicePrice{
			ID:          id,
			ItemType:    catalog.ItemType(wp.ItemType),
			ServiceType: catalog.ServiceType(wp.ServiceType),
			Price:       decimal.NewFromFloat(wp.Price),
			CreatedAt:   wp.CreatedAt,
			UpdatedAt:   wp.UpdatedAt,
		})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
