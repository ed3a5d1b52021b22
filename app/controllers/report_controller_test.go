package controllers_test

import (
	"testing"
	"time"

	"github.com/shashiranjanraj/posnet/app/controllers"
	"github.com/shashiranjanraj/posnet/app/models"
	"github.com/shashiranjanraj/posnet/internal/testutil"
	"gorm.io/gorm"
)

func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()

	rows := []error{
		db.Create(&models.Store{ID: 1, Name: "S1"}).Error,
		db.Create(&models.Store{ID: 2, Name: "S2"}).Error,
		db.Create(&models.Product{ID: 1, Name: "Widget", Price: 2.0, Stock: 0, StoreID: ptr(1)}).Error,
		db.Create(&models.Product{ID: 2, Name: "Gadget", Price: 5.0, Stock: 150, StoreID: ptr(2)}).Error,
		db.Create(&models.Sale{ID: 1, StoreID: ptr(1), Timestamp: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), Items: []models.SaleItem{
			{ProductID: 1, Quantity: 3, Price: 2.0},
		}}).Error,
		db.Create(&models.Sale{ID: 2, StoreID: ptr(2), Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), Items: []models.SaleItem{
			{ProductID: 2, Quantity: 1, Price: 5.0},
		}}).Error,
	}
	for _, err := range rows {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestSalesReport(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)

	report, err := controllers.NewReportController(db).Sales()
	if err != nil {
		t.Fatalf("Sales: %v", err)
	}

	revenue := map[string]float64{}
	for _, r := range report.Stores {
		revenue[r.Store] = r.Revenue
	}
	if revenue["S1"] != 6.0 || revenue["S2"] != 5.0 {
		t.Errorf("revenue = %v, want S1=6 S2=5", revenue)
	}

	if len(report.TopProducts) == 0 || report.TopProducts[0].Name != "Widget" {
		t.Errorf("top products = %+v, want Widget first (3 units)", report.TopProducts)
	}

	if len(report.Stock) != 2 {
		t.Errorf("stock listing has %d rows, want 2", len(report.Stock))
	}
}

func TestDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)

	m, err := controllers.NewReportController(db).Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(m.OutOfStock) != 1 || m.OutOfStock[0].Product != "Widget" {
		t.Errorf("out of stock = %+v, want [Widget]", m.OutOfStock)
	}
	if len(m.Overstock) != 1 || m.Overstock[0].Product != "Gadget" {
		t.Errorf("overstock = %+v, want [Gadget]", m.Overstock)
	}

	// The two sales fall in different ISO weeks.
	if len(m.Weekly) != 2 {
		t.Fatalf("weekly buckets = %+v, want 2", m.Weekly)
	}
	first := m.Weekly[0]
	if !first.Week.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first bucket week = %v, want Monday 2026-03-02", first.Week)
	}
	if first.Store != "S1" || first.Revenue != 6.0 {
		t.Errorf("first bucket = %+v, want S1 revenue 6", first)
	}
}

func TestHQStock(t *testing.T) {
	db := testutil.NewDB(t)

	db.Create(&models.Product{ID: 1, Name: "Widget", Price: 2.0})
	db.Create(&models.Product{ID: 2, Name: "Gadget", Price: 5.0})
	db.Create(&models.CentralStock{ProductID: 1, Quantity: 50})
	db.Create(&models.CentralStock{ProductID: 2, Quantity: 10})

	entries, err := controllers.NewReportController(db).HQStock()
	if err != nil {
		t.Fatalf("HQStock: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2", entries)
	}
	// Ordered by product name.
	if entries[0].Product != "Gadget" || entries[0].Quantity != 10 {
		t.Errorf("first entry = %+v, want Gadget/10", entries[0])
	}
	if entries[1].Product != "Widget" || entries[1].Quantity != 50 {
		t.Errorf("second entry = %+v, want Widget/50", entries[1])
	}
}
