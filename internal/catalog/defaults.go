package catalog

import "github.com/shopspring/decimal"

// FallbackPrice is served when a pair has no row in the catalog.
var FallbackPrice = decimal.NewFromInt(5)

type defaultPrice struct {
	item    ItemType
	service ServiceType
	price   int64
}

// Blanket has no iron-only service; its row is kept at 0 so every pair exists.
var defaultPrices = []defaultPrice{
	{ItemThobe, ServiceWashIron, 5},
	{ItemThobe, ServiceIronOnly, 3},
	{ItemThobe, ServiceDryClean, 8},

	{ItemShirt, ServiceWashIron, 3},
	{ItemShirt, ServiceIronOnly, 2},
	{ItemShirt, ServiceDryClean, 5},

	{ItemSuit, ServiceWashIron, 15},
	{ItemSuit, ServiceIronOnly, 10},
	{ItemSuit, ServiceDryClean, 25},

	{ItemBlanket, ServiceWashIron, 25},
	{ItemBlanket, ServiceIronOnly, 0},
	{ItemBlanket, ServiceDryClean, 40},

	{ItemJacket, ServiceWashIron, 8},
	{ItemJacket, ServiceIronOnly, 5},
	{ItemJacket, ServiceDryClean, 15},

	{ItemPants, ServiceWashIron, 4},
	{ItemPants, ServiceIronOnly, 2},
	{ItemPants, ServiceDryClean, 6},

	{ItemDress, ServiceWashIron, 10},
	{ItemDress, ServiceIronOnly, 6},
	{ItemDress, ServiceDryClean, 18},

	{ItemOther, ServiceWashIron, 5},
	{ItemOther, ServiceIronOnly, 3},
	{ItemOther, ServiceDryClean, 10},
}
