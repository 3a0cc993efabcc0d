package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemThobe   ItemType = "thobe"
	ItemShirt   ItemType = "shirt"
	ItemSuit    ItemType = "suit"
	ItemBlanket ItemType = "blanket"
	ItemJacket  ItemType = "jacket"
	ItemPants   ItemType = "pants"
	ItemDress   ItemType = "dress"
	ItemOther   ItemType = "other"
)

// ItemTypes lists every garment category in display order.
var ItemTypes = []ItemType{
	ItemThobe, ItemShirt, ItemSuit, ItemBlanket,
	ItemJacket, ItemPants, ItemDress, ItemOther,
}

type ServiceType string

const (
	ServiceWashIron ServiceType = "wash_iron"
	ServiceIronOnly ServiceType = "iron_only"
	ServiceDryClean ServiceType = "dry_clean"
)

var ServiceTypes = []ServiceType{ServiceWashIron, ServiceIronOnly, ServiceDryClean}

func (t ItemType) Valid() bool {
	_, ok := itemLabels[t]
	return ok
}

func (t ServiceType) Valid() bool {
	_, ok := serviceLabels[t]
	return ok
}

type ServicePrice struct {
	ID          string
	ItemType    ItemType
	ServiceType ServiceType
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceKey is the natural composite key of a ServicePrice.
type PriceKey struct {
	ItemType    ItemType
	ServiceType ServiceType
}
