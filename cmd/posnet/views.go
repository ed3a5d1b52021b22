package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shashiranjanraj/posnet/app/controllers"
	"github.com/shashiranjanraj/posnet/app/models"
)

// Tabular rendering for command output. Kept deliberately thin: all
// decisions happen in the controllers.

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func renderProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Println("no products")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSTORE")
	for _, p := range products {
		store := "-"
		if p.StoreID != nil {
			store = fmt.Sprintf("%d", *p.StoreID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\n", p.ID, p.Name, p.Category, p.Price, p.Stock, store)
	}
	w.Flush()
}

func renderLogisticsStock(stock []models.LogisticsStock) {
	if len(stock) == 0 {
		fmt.Println("warehouse pool is empty")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tPRODUCT\tQUANTITY")
	for _, s := range stock {
		fmt.Fprintf(w, "%d\t%d\t%d\n", s.ID, s.ProductID, s.Quantity)
	}
	w.Flush()
}

func renderRequests(requests []models.RestockRequest) {
	if len(requests) == 0 {
		fmt.Println("no pending requests")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tSTORE\tPRODUCT\tQUANTITY\tSTATUS")
	for _, r := range requests {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\n", r.ID, r.StoreID, r.ProductID, r.Quantity, r.Status)
	}
	w.Flush()
}

func renderRevenue(totals []controllers.StoreRevenue) {
	if len(totals) == 0 {
		fmt.Println("no registered stores")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "STORE\tREVENUE")
	for _, t := range totals {
		fmt.Fprintf(w, "%s\t%.2f\n", t.Store, t.Revenue)
	}
	w.Flush()
}

func renderPool(entries []controllers.PoolEntry) {
	if len(entries) == 0 {
		fmt.Println("central pool is empty")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "PRODUCT\tQUANTITY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\n", e.Product, e.Quantity)
	}
	w.Flush()
}

func renderSalesReport(report *controllers.SalesReport) {
	renderRevenue(report.Stores)

	fmt.Println("\nTop products:")
	w := newTable()
	fmt.Fprintln(w, "PRODUCT\tUNITS SOLD")
	for _, p := range report.TopProducts {
		fmt.Fprintf(w, "%s\t%d\n", p.Name, p.Quantity)
	}
	w.Flush()

	fmt.Println("\nStock:")
	w = newTable()
	fmt.Fprintln(w, "PRODUCT\tSTORE\tSTOCK")
	for _, s := range report.Stock {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.Product, s.Store, s.Stock)
	}
	w.Flush()
}

func renderDashboard(m *controllers.DashboardMetrics) {
	renderRevenue(m.Revenue)

	if len(m.OutOfStock) > 0 {
		fmt.Println("\nOut of stock:")
		w := newTable()
		fmt.Fprintln(w, "PRODUCT\tSTORE")
		for _, s := range m.OutOfStock {
			fmt.Fprintf(w, "%s\t%s\n", s.Product, s.Store)
		}
		w.Flush()
	}

	if len(m.Overstock) > 0 {
		fmt.Println("\nOverstock:")
		w := newTable()
		fmt.Fprintln(w, "PRODUCT\tSTORE\tSTOCK")
		for _, s := range m.Overstock {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.Product, s.Store, s.Stock)
		}
		w.Flush()
	}

	if len(m.Weekly) > 0 {
		fmt.Println("\nWeekly revenue:")
		w := newTable()
		fmt.Fprintln(w, "WEEK\tSTORE\tREVENUE")
		for _, wr := range m.Weekly {
			fmt.Fprintf(w, "%s\t%s\t%.2f\n", wr.Week.Format("2006-01-02"), wr.Store, wr.Revenue)
		}
		w.Flush()
	}
}
