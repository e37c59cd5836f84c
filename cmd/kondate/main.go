package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"kondate/internal/blob"
	"kondate/internal/config"
	"kondate/internal/connectors"
	gmailconnector "kondate/internal/connectors/gmail"
	imapconnector "kondate/internal/connectors/imap"
	"kondate/internal/listener"
	"kondate/internal/pipeline"
	"kondate/internal/stock"
	"kondate/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	store := blob.NewFSStore(cfg.StoreRoot)

	cmd := os.Args[1]
	switch cmd {
	case "slip:parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "delivery slip PDF or text file")
		base := fs.String("base", "", "base name override")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		processor := pipeline.NewProcessingService(db, store, cfg)
		res, err := processor.ProcessFile(*input, *base)
		must(err)
		if res.Skipped {
			fmt.Printf("skipped base=%s (not a delivery schedule)\n", res.BaseName)
			return
		}
		fmt.Printf("parsed base=%s slips=%d items=%d\n", res.BaseName, res.SlipCount, res.ItemCount)
	case "slip:apply":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		base := fs.String("base", "", "base name of a parsed delivery set")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*base) == "" {
			must(fmt.Errorf("--base is required"))
		}
		processor := pipeline.NewProcessingService(db, store, cfg)
		stockSvc := stock.NewService(store, cfg.Account)
		result, err := processor.ApplyParsed(stockSvc, *base)
		must(err)
		fmt.Printf("apply done base=%s status=%s added=%d\n", *base, result.Status, result.AddedCount)
	case "slip:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "delivery slip PDF or text file")
		base := fs.String("base", "", "base name override")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		processor := pipeline.NewProcessingService(db, store, cfg)
		res, err := processor.ProcessFile(*input, *base)
		must(err)
		if res.Skipped {
			fmt.Printf("skipped base=%s (not a delivery schedule)\n", res.BaseName)
			return
		}
		stockSvc := stock.NewService(store, cfg.Account)
		result, err := processor.ApplyParsed(stockSvc, res.BaseName)
		must(err)
		fmt.Printf("run done base=%s slips=%d items=%d status=%s added=%d\n",
			res.BaseName, res.SlipCount, res.ItemCount, result.Status, result.AddedCount)
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", cfg.WatcherProvider, "gmail|imap")
		label := fs.String("label", cfg.WatcherLabel, "mailbox/label")
		max := fs.Int("max", cfg.WatcherFetchMax, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.InboxDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "mail:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batch := fs.Int("batch", cfg.WatcherProcessBatch, "batch size")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, store, cfg)
		processed, skipped, err := processor.ProcessPending(*batch)
		must(err)
		fmt.Printf("processed pending documents=%d skipped=%d\n", processed, skipped)
	case "mail:watch":
		s := listener.NewService(db, store, cfg)
		must(s.Run(context.Background()))
	case "stock:show":
		stockSvc := stock.NewService(store, cfg.Account)
		snapshot, err := stockSvc.Snapshot()
		must(err)
		fmt.Printf("stock account=%s items=%d updated=%s\n", cfg.Account, len(snapshot.Items), derefOr(snapshot.Meta.UpdatedAt, "-"))
		for _, item := range snapshot.Items {
			fmt.Printf("  %-20s %-30s %10.2f %s\n", item.Vendor, item.Name, item.Quantity, item.Unit)
		}
	case "stock:adjust":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "item name")
		unit := fs.String("unit", "", "item unit")
		vendor := fs.String("vendor", "", "vendor name")
		delta := fs.Float64("delta", 0, "signed quantity delta")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*name) == "" || strings.TrimSpace(*unit) == "" {
			must(fmt.Errorf("--name and --unit are required"))
		}
		stockSvc := stock.NewService(store, cfg.Account)
		item, err := stockSvc.AdjustItem(*name, *unit, *vendor, *delta)
		must(err)
		fmt.Printf("adjusted %s/%s: quantity=%.2f %s\n", item.Vendor, item.Name, item.Quantity, item.Unit)
	case "stock:applied":
		stockSvc := stock.NewService(store, cfg.Account)
		markers, err := stockSvc.AppliedMarkers()
		must(err)
		for _, m := range markers {
			fmt.Printf("%-40s applied=%s slips=%d items=%d\n", m.BaseName, m.AppliedAt, m.SlipCount, m.ItemCount)
		}
		fmt.Printf("%d applied documents\n", len(markers))
	case "stock:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		stockSvc := stock.NewService(store, cfg.Account)
		snapshot, err := stockSvc.Snapshot()
		must(err)
		must(pipeline.ExportStockXLSX(snapshot.Items, *out))
		fmt.Printf("exported %d stock items to %s\n", len(snapshot.Items), *out)
	case "slip:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		base := fs.String("base", "", "base name of a parsed delivery set")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*base) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--base and --out are required"))
		}
		data, err := store.Get(blob.DeliverySetPath(cfg.Account, *base))
		must(err)
		doc, err := stock.DecodeDocument(data)
		must(err)
		must(pipeline.ExportDeliverySetXLSX(doc, *out))
		fmt.Printf("exported delivery set base=%s to %s\n", *base, *out)
	case "doc:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		status := fs.String("status", "parsed", "fetched|parsed|applied|skipped|failed")
		limit := fs.Int("limit", 50, "max rows")
		_ = fs.Parse(os.Args[2:])
		rows, err := db.ListDocumentsByStatus(*status, *limit)
		must(err)
		for _, row := range rows {
			fmt.Printf("%-40s %-8s slips=%d items=%d source=%s\n", row.BaseName, row.Status, row.SlipCount, row.ItemCount, row.Source)
		}
		fmt.Printf("%d documents status=%s\n", len(rows), *status)
	default:
		usage()
		os.Exit(1)
	}
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func derefOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func usage() {
	fmt.Println("usage: kondate <command>")
	fmt.Println("commands:")
	fmt.Println("  slip:parse --input=./slip.pdf [--base=...]")
	fmt.Println("  slip:apply --base=...")
	fmt.Println("  slip:run --input=./slip.pdf [--base=...]")
	fmt.Println("  slip:export --base=... --out=./out/slips.xlsx")
	fmt.Println("  mail:fetch [--provider=gmail|imap] [--label=INBOX] [--max=20]")
	fmt.Println("  mail:process [--batch=20]")
	fmt.Println("  mail:watch")
	fmt.Println("  stock:show")
	fmt.Println("  stock:adjust --name=... --unit=... [--vendor=...] --delta=-2.5")
	fmt.Println("  stock:applied")
	fmt.Println("  stock:export --out=./out/stock.xlsx")
	fmt.Println("  doc:list [--status=parsed] [--limit=50]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
