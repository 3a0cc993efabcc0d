package order

import (
	"time"

	"laundry-pos/internal/catalog"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusReceived   Status = "received"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
)

// Statuses lists the pipeline in order.
var Statuses = []Status{StatusReceived, StatusProcessing, StatusReady, StatusDelivered}

var statusLabels = map[Status]catalog.Label{
	StatusReceived:   {Arabic: "استلم", English: "Received"},
	StatusProcessing: {Arabic: "قيد المعالجة", English: "Processing"},
	StatusReady:      {Arabic: "جاهز", English: "Ready"},
	StatusDelivered:  {Arabic: "تم التسليم", English: "Delivered"},
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() catalog.Label {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return catalog.Label{Arabic: string(s), English: string(s)}
}

// Next returns the following pipeline step; delivered has none.
func (s Status) Next() (Status, bool) {
	for i, st := range Statuses {
		if st == s && i+1 < len(Statuses) {
			return Statuses[i+1], true
		}
	}
	return "", false
}

type Order struct {
	ID           string
	OrderNumber  string
	CustomerName string
	PhoneNumber  string
	Items        []OrderItem
	TotalAmount  decimal.Decimal
	PickupDate   string
	Status       Status
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OrderItem struct {
	ItemType    catalog.ItemType
	ServiceType catalog.ServiceType
	UnitPrice   decimal.Decimal
	Quantity    int
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumItems is the only source of an order's total amount.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Pieces counts garments across all items.
func (o *Order) Pieces() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

const PickupDateLayout = "2006-01-02"
