package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"laundry-pos/internal/backup"
	"laundry-pos/internal/catalog"
	"laundry-pos/internal/config"
	"laundry-pos/internal/logger"
	"laundry-pos/internal/order"
	"laundry-pos/internal/receipt"
	"laundry-pos/internal/report"

	"github.com/shopspring/decimal"
)

const usage = `usage: laundry <command> [args]

commands:
  init                                  seed the default price list
  prices list
  prices set -item T -service S -price P
  order create -name N -phone P [-pickup YYYY-MM-DD] [-notes X] -item type:service[:qty] ...
  order status (-id ID | -number NUM) -status S
  order list [-status S | -pickup YYYY-MM-DD | -from YYYY-MM-DD -to YYYY-MM-DD]
  order show -number NUM
  report [-date YYYY-MM-DD] [-xlsx FILE]
  backup export [-dir DIR]
  backup import -file FILE
  receipt -number NUM`

var errUsage = errors.New("invalid usage")

const dateLayout = "2006-01-02"

type app struct {
	cfg *config.Config
	out io.Writer
	now func() time.Time

	prices  catalog.Service
	orders  order.Service
	reports report.Service
	backups backup.Service
}

func newApp(cfg *config.Config, database *sql.DB, out io.Writer) *app {
	priceRepo := catalog.NewRepository(database)
	orderRepo := order.NewRepository(database)

	return &app{
		cfg: cfg,
		out: out,
		now: time.Now,

		prices: catalog.NewService(priceRepo),
		orders: order.NewService(
			orderRepo,
			order.NewNumberGenerator(orderRepo, nil),
			order.Options{StrictStatusFlow: cfg.StrictStatusFlow},
		),
		reports: report.NewService(orderRepo),
		backups: backup.NewService(database, priceRepo, orderRepo),
	}
}

type command func(ctx context.Context, args []string) error

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return errUsage
	}

	commands := map[string]command{
		"init":          a.initCatalog,
		"prices list":   a.listPrices,
		"prices set":    a.setPrice,
		"order create":  a.createOrder,
		"order status":  a.updateStatus,
		"order list":    a.listOrders,
		"order show":    a.showOrder,
		"report":        a.dailyReport,
		"backup export": a.exportBackup,
		"backup import": a.importBackup,
		"receipt":       a.printReceipt,
	}

	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok && len(rest) > 0 {
		name, rest = name+" "+rest[0], rest[1:]
		cmd, ok = commands[name]
	}
	if !ok {
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, strings.Join(args, " "))
	}

	ctx, done := logger.StartOperation(ctx, strings.ReplaceAll(name, " ", "."))
	err := cmd(ctx, rest)
	done(err)
	return err
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) initCatalog(ctx context.Context, args []string) error {
	if err := a.prices.InitializeDefaults(ctx); err != nil {
		return err
	}
	prices, err := a.prices.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "price list ready (%d entries)\n", len(prices))
	return nil
}

func (a *app) listPrices(ctx context.Context, args []string) error {
	m, err := a.prices.PriceMap(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tSERVICE\tPRICE\t")
	for _, it := range catalog.ItemTypes {
		for _, st := range catalog.ServiceTypes {
			fmt.Fprintf(tw, "%s (%s)\t%s (%s)\t%s\t\n",
				it, it.Label().Arabic, st, st.Label().Arabic,
				m[catalog.PriceKey{ItemType: it, ServiceType: st}].StringFixed(2))
		}
	}
	return tw.Flush()
}

func (a *app) setPrice(ctx context.Context, args []string) error {
	fs := a.flags("prices set")
	item := fs.String("item", "", "item type")
	svc := fs.String("service", "", "service type")
	price := fs.String("price", "", "new price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("%w: price %q", errUsage, *price)
	}
	if err := a.prices.SetPrice(ctx, catalog.ItemType(*item), catalog.ServiceType(*svc), p); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s/%s = %s\n", *item, *svc, p.StringFixed(2))
	return nil
}

// itemsFlag collects repeated -item type:service[:qty] values.
type itemsFlag []string

func (f *itemsFlag) String() string { return strings.Join(*f, ",") }

func (f *itemsFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func (a *app) createOrder(ctx context.Context, args []string) error {
	d := order.NewDraft(a.now())

	fs := a.flags("order create")
	fs.StringVar(&d.CustomerName, "name", "", "customer name")
	fs.StringVar(&d.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&d.PickupDate, "pickup", d.PickupDate, "pickup date (YYYY-MM-DD)")
	fs.StringVar(&d.Notes, "notes", "", "notes")
	var items itemsFlag
	fs.Var(&items, "item", "type:service[:qty], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, spec := range items {
		it, st, qty, err := parseItem(spec)
		if err != nil {
			return err
		}
		d.AddQuickItem(it, st, a.prices.GetPrice(ctx, it, st))
		d.UpdateQuantity(len(d.Items())-1, qty-1)
	}

	o, err := a.orders.PlaceOrder(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "order %s created (id %s), total %s\n",
		o.OrderNumber, o.ID, o.TotalAmount.StringFixed(2))
	return nil
}

func parseItem(spec string) (catalog.ItemType, catalog.ServiceType, int, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", 0, fmt.Errorf("%w: item %q, want type:service[:qty]", errUsage, spec)
	}

	qty := 1
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return "", "", 0, fmt.Errorf("%w: quantity in %q", errUsage, spec)
		}
		qty = n
	}
	return catalog.ItemType(parts[0]), catalog.ServiceType(parts[1]), qty, nil
}

func (a *app) updateStatus(ctx context.Context, args []string) error {
	fs := a.flags("order status")
	id := fs.String("id", "", "order id")
	number := fs.String("number", "", "order number")
	status := fs.String("status", "", "new status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" && *number != "" {
		o, err := a.orders.GetByNumber(ctx, *number)
		if err != nil {
			return err
		}
		*id = o.ID
	}
	if *id == "" {
		return fmt.Errorf("%w: -id or -number is required", errUsage)
	}

	if err := a.orders.UpdateStatus(ctx, *id, order.Status(*status)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "status set to %s\n", *status)
	return nil
}

func (a *app) listOrders(ctx context.Context, args []string) error {
	fs := a.flags("order list")
	status := fs.String("status", "", "filter by status")
	pickup := fs.String("pickup", "", "filter by pickup date")
	from := fs.String("from", "", "created on or after (YYYY-MM-DD)")
	to := fs.String("to", "", "created on or before (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		orders []*order.Order
		err    error
	)
	switch {
	case *status != "":
		orders, err = a.orders.ListByStatus(ctx, order.Status(*status))
	case *pickup != "":
		orders, err = a.orders.ListByPickupDate(ctx, *pickup)
	case *from != "" || *to != "":
		start, end := time.Time{}, a.now()
		if *from != "" {
			if start, err = parseDay(*from); err != nil {
				return err
			}
		}
		if *to != "" {
			if end, err = parseDay(*to); err != nil {
				return err
			}
		}
		_, end = report.DayWindow(end)
		orders, err = a.orders.ListByDateRange(ctx, start, end)
	default:
		orders, err = a.orders.ListAll(ctx)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tPHONE\tPIECES\tTOTAL\tSTATUS\tPICKUP\t")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t\n",
			o.OrderNumber, o.CustomerName, o.PhoneNumber, o.Pieces(),
			o.TotalAmount.StringFixed(2), o.Status, o.PickupDate)
	}
	return tw.Flush()
}

func (a *app) showOrder(ctx context.Context, args []string) error {
	o, err := a.orderByNumber(ctx, "order show", args)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s (%s)\n", o.OrderNumber, o.Status, o.Status.Label().Arabic)
	fmt.Fprintf(a.out, "customer: %s  %s\n", o.CustomerName, o.PhoneNumber)
	fmt.Fprintf(a.out, "pickup:   %s\n", o.PickupDate)
	for _, l := range receipt.Lines(o) {
		fmt.Fprintf(a.out, "  %s  %s\n", l.Label, l.Total.StringFixed(2))
	}
	fmt.Fprintf(a.out, "total:    %s\n", o.TotalAmount.StringFixed(2))
	if o.Notes != "" {
		fmt.Fprintf(a.out, "notes:    %s\n", o.Notes)
	}
	return nil
}

func (a *app) printReceipt(ctx context.Context, args []string) error {
	o, err := a.orderByNumber(ctx, "receipt", args)
	if err != nil {
		return err
	}
	return receipt.RenderText(a.out, o, a.cfg.ShopName)
}

func (a *app) orderByNumber(ctx context.Context, name string, args []string) (*order.Order, error) {
	fs := a.flags(name)
	number := fs.String("number", "", "order number")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *number == "" {
		return nil, fmt.Errorf("%w: -number is required", errUsage)
	}
	return a.orders.GetByNumber(ctx, *number)
}

func (a *app) dailyReport(ctx context.Context, args []string) error {
	fs := a.flags("report")
	date := fs.String("date", "", "report date (YYYY-MM-DD), default today")
	xlsx := fs.String("xlsx", "", "also write the report workbook to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day := a.now()
	if *date != "" {
		var err error
		if day, err = parseDay(*date); err != nil {
			return err
		}
	}

	r, orders, err := a.reports.DailyReport(ctx, day)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "report for %s\n", r.Date)
	fmt.Fprintf(a.out, "revenue:          %s\n", r.TotalRevenue.StringFixed(2))
	fmt.Fprintf(a.out, "orders:           %d\n", r.TotalOrders)
	fmt.Fprintf(a.out, "pending:          %d\n", r.PendingOrders)
	fmt.Fprintf(a.out, "pieces processed: %d\n", r.PiecesProcessed)
	for _, st := range order.Statuses {
		fmt.Fprintf(a.out, "  %-12s %d\n", st, r.OrdersByStatus[st])
	}

	if *xlsx == "" {
		return nil
	}
	f, err := os.Create(*xlsx)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := report.WriteXLSX(f, r, orders); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "workbook written to %s\n", *xlsx)
	return nil
}

func (a *app) exportBackup(ctx context.Context, args []string) error {
	fs := a.flags("backup export")
	dir := fs.String("dir", a.cfg.BackupDir, "destination directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, err := a.backups.Export(ctx)
	if err != nil {
		return err
	}
	path, err := backup.WriteFile(*dir, snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "backup written to %s (%d orders, %d prices)\n",
		path, len(snap.Orders), len(snap.ServicePrices))
	return nil
}

func (a *app) importBackup(ctx context.Context, args []string) error {
	fs := a.flags("backup import")
	file := fs.String("file", "", "backup file to restore")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%w: -file is required", errUsage)
	}

	snap, err := backup.ReadFile(filepath.Clean(*file))
	if err != nil {
		return err
	}
	if err := a.backups.Import(ctx, snap); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "restored %d orders and %d prices\n", len(snap.Orders), len(snap.ServicePrices))
	return nil
}

// parseDay reads YYYY-MM-DD as local midnight.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", errUsage, s)
	}
	return t, nil
}
