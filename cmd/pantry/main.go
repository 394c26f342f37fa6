// Package main provides the pantry command line client.
// Usage: pantry list [--search milch] [--location Kühlschrank] [--group expiry]
//        pantry add --name "Milch" --quantity 2 [--ean 4008477040]
//        pantry rm <id>
//        pantry scan <ean>
//        pantry shop [add|check|clear|generate]
//        pantry stats [--advanced]
//        pantry history [--limit 10]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SimplyTil/HeimInventar/internal/client"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
	"github.com/SimplyTil/HeimInventar/internal/domain/stats"
	"github.com/SimplyTil/HeimInventar/internal/domain/view"
	"github.com/SimplyTil/HeimInventar/internal/imaging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	api := client.New(serverURL())

	switch os.Args[1] {
	case "list":
		listProducts(ctx, api)
	case "add":
		addProduct(ctx, api)
	case "rm":
		removeProduct(ctx, api)
	case "scan":
		scanBarcode(ctx, api)
	case "shop":
		shoppingCommand(ctx, api)
	case "stats":
		showStats(ctx, api)
	case "history":
		showHistory(ctx, api)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`HeimInventar CLI

Usage:
  pantry <command> [options]

Commands:
  list      Show the inventory, optionally filtered and grouped
  add       Add a product, merging duplicates on request
  rm        Remove a product by ID
  scan      Look up a barcode in the food database
  shop      Manage the shopping list
  stats     Show inventory statistics
  history   Show recently scanned barcodes
  help      Show this help

Environment Variables:
  HEIMINVENTAR_SERVER   Base URL of the API server (default http://localhost:5000)

Examples:
  pantry list --search milch --group expiry
  pantry add --name "Vollmilch" --quantity 2 --ean 4008477040 --expiry 2026-09-15
  pantry shop generate
  pantry stats --advanced`)
}

func serverURL() string {
	if url := os.Getenv("HEIMINVENTAR_SERVER"); url != "" {
		return url
	}
	return "http://localhost:5000"
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func listProducts(ctx context.Context, api *client.Client) {
	flags := flag.NewFlagSet("list", flag.ExitOnError)
	search := flags.String("search", "", "filter by name, notes or barcode")
	location := flags.String("location", "", "filter by storage location")
	from := flags.String("from", "", "earliest expiry date (YYYY-MM-DD)")
	to := flags.String("to", "", "latest expiry date (YYYY-MM-DD)")
	group := flags.String("group", view.GroupNone, "grouping: none, location or expiry")
	flags.Parse(os.Args[2:])

	store := client.NewStore(api)
	if err := store.Refresh(ctx); err != nil {
		fail(err)
	}

	criteria := view.Criteria{
		SearchText: *search,
		DateFrom:   *from,
		DateTo:     *to,
		GroupBy:    *group,
	}
	if *location != "" {
		criteria.Locations = []string{*location}
	}

	groups := store.View(criteria)
	if len(groups) == 0 {
		fmt.Println("Keine Produkte gefunden.")
		return
	}

	for _, g := range groups {
		fmt.Printf("\n%s (%d)\n", g.Label, len(g.Items))
		for _, it := range g.Items {
			printItem(store, it)
		}
	}
}

func printItem(store *client.Store, it product.Item) {
	expiryCol := "ohne Datum"
	if it.HasExpiry() {
		info := store.Freshness(it.ExpiryDate)
		switch {
		case info.Days < 0:
			expiryCol = fmt.Sprintf("%s (abgelaufen)", it.ExpiryDate)
		case info.Days == 0:
			expiryCol = fmt.Sprintf("%s (heute)", it.ExpiryDate)
		default:
			expiryCol = fmt.Sprintf("%s (%d Tage)", it.ExpiryDate, info.Days)
		}
	}
	fmt.Printf("  [%4d] %-30s %3dx  %-15s %s\n", it.ID, it.Name, it.Quantity, it.Location, expiryCol)
}

func addProduct(ctx context.Context, api *client.Client) {
	flags := flag.NewFlagSet("add", flag.ExitOnError)
	name := flags.String("name", "", "product name (required)")
	quantity := flags.Int("quantity", 1, "number of pieces")
	ean := flags.String("ean", "", "barcode")
	expiry := flags.String("expiry", "", "expiry date (YYYY-MM-DD)")
	location := flags.String("location", "", "storage location")
	price := flags.String("price", "", "price per piece")
	imagePath := flags.String("image", "", "product photo to attach")
	flags.Parse(os.Args[2:])

	form := client.NewFormSession(nil)
	form.Request.Name = *name
	form.Request.Barcode = *ean
	form.Request.ExpiryDate = *expiry
	form.Request.Location = *location
	form.Request.Quantity = quantity
	if *price != "" {
		if err := form.Request.Price.UnmarshalText([]byte(*price)); err != nil {
			fail(fmt.Errorf("ungültiger Preis: %w", err))
		}
	}

	if *imagePath != "" {
		encoded, err := attachImage(*imagePath)
		if err != nil {
			fail(err)
		}
		form.Request.ImageURL = encoded.DataURI
	}

	if problems := form.Validate(); len(problems) > 0 {
		for field, msg := range problems {
			fmt.Printf("%s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	workflow := client.NewSaveWorkflow(api)
	outcome, err := workflow.Begin(ctx, form.ToItem(), false)
	if err != nil {
		fail(err)
	}

	if !outcome.Saved {
		fmt.Println("Mögliche Duplikate gefunden:")
		for _, d := range outcome.Candidates {
			fmt.Printf("  [%d] %s (%dx, %s)\n", d.ID, d.Name, d.Quantity, d.Location)
		}

		switch prompt("Menge zusammenführen (m), neu anlegen (n) oder abbrechen (a)? ") {
		case "m":
			outcome, err = workflow.Merge(ctx)
		case "n":
			outcome, err = workflow.InsertNew(ctx)
		default:
			workflow.Cancel()
			fmt.Println("Abgebrochen.")
			return
		}
		if err != nil {
			fail(err)
		}
	}

	fmt.Printf("Gespeichert (ID %d).\n", outcome.ID)
}

// attachImage shrinks and re-encodes a photo the same way the web upload
// does, so the server receives a bounded data URI.
func attachImage(path string) (*imaging.Encoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Bild konnte nicht geöffnet werden: %w", err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	return imaging.Process(f, contentType)
}

func prompt(question string) string {
	fmt.Print(question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line))
}

func removeProduct(ctx context.Context, api *client.Client) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: pantry rm <id>")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		fail(fmt.Errorf("ungültige ID %q", os.Args[2]))
	}

	if err := api.DeleteProduct(ctx, id); err != nil {
		fail(err)
	}
	fmt.Println("Produkt erfolgreich gelöscht")
}

func scanBarcode(ctx context.Context, api *client.Client) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: pantry scan <ean>")
		os.Exit(1)
	}

	result, err := api.Scan(ctx, os.Args[2])
	if err != nil {
		fail(err)
	}
	if !result.Found {
		fmt.Println(result.Message)
		return
	}

	fmt.Printf("Name:      %s\n", result.Name)
	fmt.Printf("Kategorie: %s\n", result.Category)
	fmt.Printf("Menge:     %s\n", result.Quantity)
	fmt.Printf("Marke:     %s\n", result.Brands)
	if result.IsVegan {
		fmt.Println("Vegan")
	} else if result.IsVegetarian {
		fmt.Println("Vegetarisch")
	}
}

func shoppingCommand(ctx context.Context, api *client.Client) {
	sub := "list"
	if len(os.Args) > 2 {
		sub = os.Args[2]
	}

	switch sub {
	case "list":
		entries, err := api.ShoppingList(ctx)
		if err != nil {
			fail(err)
		}
		if len(entries) == 0 {
			fmt.Println("Die Einkaufsliste ist leer.")
			return
		}
		for _, e := range entries {
			mark := " "
			if e.Checked {
				mark = "x"
			}
			fmt.Printf("  [%s] [%3d] %dx %s\n", mark, e.ID, e.Quantity, e.Name)
		}
	case "add":
		if len(os.Args) < 4 {
			fmt.Println("Usage: pantry shop add <name> [quantity]")
			os.Exit(1)
		}
		entry := shopping.Entry{Name: os.Args[3], Quantity: 1}
		if len(os.Args) > 4 {
			if q, err := strconv.Atoi(os.Args[4]); err == nil {
				entry.Quantity = q
			}
		}
		if err := api.AddShoppingItem(ctx, &entry); err != nil {
			fail(err)
		}
		fmt.Println("Zur Einkaufsliste hinzugefügt.")
	case "check":
		if len(os.Args) < 4 {
			fmt.Println("Usage: pantry shop check <id>")
			os.Exit(1)
		}
		id, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			fail(fmt.Errorf("ungültige ID %q", os.Args[3]))
		}
		entries, err := api.ShoppingList(ctx)
		if err != nil {
			fail(err)
		}
		for _, e := range entries {
			if e.ID == id {
				e.Checked = !e.Checked
				if err := api.UpdateShoppingItem(ctx, &e); err != nil {
					fail(err)
				}
				fmt.Println("Aktualisiert.")
				return
			}
		}
		fail(fmt.Errorf("Eintrag %d nicht gefunden", id))
	case "clear":
		if err := api.ClearCheckedShoppingItems(ctx); err != nil {
			fail(err)
		}
		fmt.Println("Erledigte Einträge entfernt.")
	case "generate":
		count, err := api.GenerateShoppingList(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%d Einträge hinzugefügt.\n", count)
	default:
		fmt.Printf("Unknown shop command: %s\n", sub)
		os.Exit(1)
	}
}

func showStats(ctx context.Context, api *client.Client) {
	flags := flag.NewFlagSet("stats", flag.ExitOnError)
	advanced := flags.Bool("advanced", false, "include waste and consumption figures")
	flags.Parse(os.Args[2:])

	if !*advanced {
		basic, err := api.Statistics(ctx)
		if err != nil {
			fail(err)
		}
		printBasicStats(basic)
		return
	}

	// Both aggregates are independent, fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)

	var basic *stats.Basic
	var adv *stats.Advanced
	g.Go(func() error {
		b, err := api.Statistics(gctx)
		basic = b
		return err
	})
	g.Go(func() error {
		a, err := api.AdvancedStatistics(gctx)
		adv = a
		return err
	})
	if err := g.Wait(); err != nil {
		fail(err)
	}

	printBasicStats(basic)

	fmt.Printf("\nVerschwendung:     %d Produkte (%s €)\n", adv.Waste.Count, adv.Waste.Value)
	fmt.Printf("Diese Woche neu:   %d\n", adv.WeeklyAdditions)
	if len(adv.TopScanned) > 0 {
		fmt.Println("Meistgescannt:")
		for _, s := range adv.TopScanned {
			fmt.Printf("  %dx %s\n", s.Count, s.Name)
		}
	}
	if len(adv.ByCategory) > 0 {
		fmt.Println("Nach Kategorie:")
		for _, c := range adv.ByCategory {
			fmt.Printf("  %-20s %d Produkte, %d Stück\n", c.Category, c.Count, c.Items)
		}
	}
}

func printBasicStats(b *stats.Basic) {
	fmt.Printf("Produkte:          %d\n", b.TotalProducts)
	fmt.Printf("Stück gesamt:      %d\n", b.TotalItems)
	fmt.Printf("Gesamtwert:        %s €\n", b.TotalValue)
	fmt.Printf("Läuft bald ab:     %d\n", b.ExpiringSoon)
	fmt.Printf("Abgelaufen:        %d\n", b.Expired)
	if len(b.ByLocation) > 0 {
		fmt.Println("Nach Lagerort:")
		for _, loc := range b.ByLocation {
			label := loc.Location
			if label == "" {
				label = "Sonstiges"
			}
			fmt.Printf("  %-20s %d Produkte, %d Stück\n", label, loc.Products, loc.Items)
		}
	}
}

func showHistory(ctx context.Context, api *client.Client) {
	flags := flag.NewFlagSet("history", flag.ExitOnError)
	limit := flags.Int("limit", 10, "number of entries")
	flags.Parse(os.Args[2:])

	entries, err := api.BarcodeHistory(ctx, *limit)
	if err != nil {
		fail(err)
	}
	if len(entries) == 0 {
		fmt.Println("Noch keine Barcodes gescannt.")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s  %3dx  %s\n", e.Barcode, e.ScanCount, e.Name)
	}
}
