package catalog

type Label struct {
	Arabic  string
	English string
}

var itemLabels = map[ItemType]Label{
	ItemThobe:   {"ثوب", "Thobe"},
	ItemShirt:   {"قميص", "Shirt"},
	ItemSuit:    {"بدلة", "Suit"},
	ItemBlanket: {"بطانية", "Blanket"},
	ItemJacket:  {"جاكيت", "Jacket"},
	ItemPants:   {"بنطلون", "Pants"},
	ItemDress:   {"فستان", "Dress"},
	ItemOther:   {"أخرى", "Other"},
}

var serviceLabels = map[ServiceType]Label{
	ServiceWashIron: {"غسيل وكوي", "Wash & Iron"},
	ServiceIronOnly: {"كوي فقط", "Iron Only"},
	ServiceDryClean: {"تنظيف جاف", "Dry Clean"},
}

// Label returns the display labels, falling back to the raw value.
func (t ItemType) Label() Label {
	if l, ok := itemLabels[t]; ok {
		return l
	}
	return Label{string(t), string(t)}
}

func (t ServiceType) Label() Label {
	if l, ok := serviceLabels[t]; ok {
		return l
	}
	return Label{string(t), string(t)}
}
