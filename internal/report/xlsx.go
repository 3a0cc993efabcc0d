package report

import (
	"fmt"
	"io"

	"laundry-pos/internal/order"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	OrdersSheet  = "Orders"
)

var orderHeader = []any{"Order #", "Customer", "Phone", "Pieces", "Total", "Status", "Pickup", "Created"}

// WriteXLSX writes the close-out workbook: the report figures on one sheet
// and one row per order on the other.
func WriteXLSX(w io.Writer, r *DailyReport, orders []*order.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(OrdersSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummary(f, r, bold); err != nil {
		return err
	}
	if err := writeOrders(f, orders, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r *DailyReport, bold int) error {
	revenue, _ := r.TotalRevenue.Float64()
	rows := [][]any{
		{"Date", r.Date},
		{"Total revenue", revenue},
		{"Total orders", r.TotalOrders},
		{"Pending orders", r.PendingOrders},
		{"Pieces processed", r.PiecesProcessed},
	}
	for _, st := range order.Statuses {
		rows = append(rows, []any{st.Label().English, r.OrdersByStatus[st]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(SummarySheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "B", 20)
}

func writeOrders(f *excelize.File, orders []*order.Order, bold int) error {
	if err := f.SetSheetRow(OrdersSheet, "A1", &orderHeader); err != nil {
		return fmt.Errorf("write order header: %w", err)
	}
	if err := f.SetCellStyle(OrdersSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("style order header: %w", err)
	}

	for i, o := range orders {
		total, _ := o.TotalAmount.Float64()
		row := []any{
			o.OrderNumber,
			o.CustomerName,
			o.PhoneNumber,
			o.Pieces(),
			total,
			o.Status.Label().English,
			o.PickupDate,
			o.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return fmt.Errorf("write order %s: %w", o.OrderNumber, err)
		}
	}

	return f.SetColWidth(OrdersSheet, "A", "H", 16)
}
