// Package receipt computes the customer-facing totals of an order and
// renders them for a thermal printer.
package receipt

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"laundry-pos/internal/order"

	"github.com/shopspring/decimal"
)

// VATRate is applied at print time only; stored totals exclude it.
var VATRate = decimal.RequireFromString("0.15")

type Totals struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// Compute rounds VAT to a whole unit, half away from zero.
func Compute(o *order.Order) Totals {
	vat := o.TotalAmount.Mul(VATRate).Round(0)
	return Totals{
		Subtotal: o.TotalAmount,
		VAT:      vat,
		Total:    o.TotalAmount.Add(vat),
	}
}

type Line struct {
	Label     string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

func Lines(o *order.Order) []Line {
	lines := make([]Line, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, Line{
			Label: fmt.Sprintf("%s - %s (%dx)",
				it.ItemType.Label().English, it.ServiceType.Label().English, it.Quantity),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.LineTotal(),
		})
	}
	return lines
}

const width = 40

func RenderText(w io.Writer, o *order.Order, shopName string) error {
	rule := strings.Repeat("-", width)
	totals := Compute(o)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	p := func(format string, args ...any) {
		fmt.Fprintf(tw, format, args...)
	}

	p("%s\n", center(shopName))
	p("%s\n", rule)
	p("Order:\t%s\t\n", o.OrderNumber)
	p("Date:\t%s\t\n", o.CreatedAt.Local().Format("2006-01-02 15:04"))
	p("Customer:\t%s\t\n", o.CustomerName)
	p("Phone:\t%s\t\n", o.PhoneNumber)
	p("Pickup:\t%s\t\n", o.PickupDate)
	p("%s\n", rule)
	for _, l := range Lines(o) {
		p("%s\t%s\t\n", l.Label, l.Total.StringFixed(2))
	}
	p("%s\n", rule)
	p("Subtotal:\t%s\t\n", totals.Subtotal.StringFixed(2))
	p("VAT 15%%:\t%s\t\n", totals.VAT.StringFixed(2))
	p("Total:\t%s\t\n", totals.Total.StringFixed(2))
	if o.Notes != "" {
		p("%s\n", rule)
		p("Notes: %s\n", o.Notes)
	}

	return tw.Flush()
}

func center(s string) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
