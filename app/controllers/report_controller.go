package controllers

import (
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/posnet/app/models"
	"gorm.io/gorm"
)

// Products holding more than this are flagged as overstocked.
const overstockThreshold = 100

// ReportController computes read-only reports over one tier's database.
// Point it at a store database for local reports or at the HQ database for
// the network-wide view.
type ReportController struct {
	db *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{db: db}
}

// TopProduct is a product ranked by units sold.
type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// StockEntry is one product's stock at one store.
type StockEntry struct {
	Product string `json:"product"`
	Store   string `json:"store"`
	Stock   int    `json:"stock"`
}

// SalesReport aggregates revenue, best sellers and stock levels.
type SalesReport struct {
	Stores      []StoreRevenue `json:"stores"`
	TopProducts []TopProduct   `json:"top_products"`
	Stock       []StockEntry   `json:"stock"`
}

// WeeklyRevenue is one store's revenue for the week starting at Week.
type WeeklyRevenue struct {
	Week    time.Time `json:"week"`
	Store   string    `json:"store"`
	Revenue float64   `json:"revenue"`
}

// DashboardMetrics carries the high-level indicators for all stores.
type DashboardMetrics struct {
	Revenue    []StoreRevenue  `json:"revenue"`
	OutOfStock []StockEntry    `json:"out_of_stock"`
	Overstock  []StockEntry    `json:"overstock"`
	Weekly     []WeeklyRevenue `json:"weekly"`
}

// PoolEntry is one product's quantity in the central warehouse pool.
type PoolEntry struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Sales builds the consolidated sales report for this database: revenue
// per store, the five best-selling products, and stock per store.
func (c *ReportController) Sales() (*SalesReport, error) {
	report := &SalesReport{}

	var stores []models.Store
	if err := c.db.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	for _, store := range stores {
		var revenue float64
		err := c.db.Model(&models.SaleItem{}).
			Select("COALESCE(SUM(sale_items.quantity * sale_items.price), 0)").
			Joins("JOIN sales ON sales.id = sale_items.sale_id").
			Where("sales.store_id = ?", store.ID).
			Scan(&revenue).Error
		if err != nil {
			return nil, fmt.Errorf("sales report: store %q: %w", store.Name, err)
		}
		report.Stores = append(report.Stores, StoreRevenue{Store: store.Name, Revenue: revenue})
	}

	err := c.db.Model(&models.SaleItem{}).
		Select("products.name AS name, SUM(sale_items.quantity) AS quantity").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Group("products.name").
		Order("quantity DESC").
		Limit(5).
		Scan(&report.TopProducts).Error
	if err != nil {
		return nil, fmt.Errorf("sales report: top products: %w", err)
	}

	err = c.db.Model(&models.Product{}).
		Select("products.name AS product, products.stock AS stock, stores.name AS store").
		Joins("JOIN stores ON stores.id = products.store_id").
		Scan(&report.Stock).Error
	if err != nil {
		return nil, fmt.Errorf("sales report: stock: %w", err)
	}

	return report, nil
}

// Dashboard computes the performance indicators: revenue per store,
// out-of-stock alerts, overstock alerts, and the weekly revenue trend.
// Weekly buckets are computed in Go so the query stays portable across
// all supported dialects.
func (c *ReportController) Dashboard() (*DashboardMetrics, error) {
	m := &DashboardMetrics{}

	err := c.db.Model(&models.SaleItem{}).
		Select("stores.name AS store, SUM(sale_items.quantity * sale_items.price) AS revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN stores ON stores.id = sales.store_id").
		Group("stores.name").
		Scan(&m.Revenue).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard: revenue: %w", err)
	}

	err = c.db.Model(&models.Product{}).
		Select("products.name AS product, stores.name AS store, products.stock AS stock").
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("products.stock <= 0").
		Scan(&m.OutOfStock).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard: out of stock: %w", err)
	}

	err = c.db.Model(&models.Product{}).
		Select("products.name AS product, stores.name AS store, products.stock AS stock").
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("products.stock > ?", overstockThreshold).
		Scan(&m.Overstock).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard: overstock: %w", err)
	}

	weekly, err := c.weeklyRevenue()
	if err != nil {
		return nil, fmt.Errorf("dashboard: weekly: %w", err)
	}
	m.Weekly = weekly

	return m, nil
}

// HQStock lists the central warehouse pool by product name.
func (c *ReportController) HQStock() ([]PoolEntry, error) {
	var entries []PoolEntry
	err := c.db.Model(&models.CentralStock{}).
		Select("products.name AS product, central_stock.quantity AS quantity").
		Joins("JOIN products ON products.id = central_stock.product_id").
		Order("products.name").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("hq stock: %w", err)
	}
	return entries, nil
}

type saleRevenueRow struct {
	Timestamp time.Time
	Store     string
	Revenue   float64
}

func (c *ReportController) weeklyRevenue() ([]WeeklyRevenue, error) {
	var rows []saleRevenueRow
	err := c.db.Model(&models.SaleItem{}).
		Select("sales.timestamp AS timestamp, stores.name AS store, sale_items.quantity * sale_items.price AS revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN stores ON stores.id = sales.store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	type bucket struct {
		week  time.Time
		store string
	}
	totals := make(map[bucket]float64, len(rows))
	for _, row := range rows {
		totals[bucket{week: weekStart(row.Timestamp), store: row.Store}] += row.Revenue
	}

	weekly := make([]WeeklyRevenue, 0, len(totals))
	for b, revenue := range totals {
		weekly = append(weekly, WeeklyRevenue{Week: b.week, Store: b.store, Revenue: revenue})
	}
	sort.Slice(weekly, func(i, j int) bool {
		if !weekly[i].Week.Equal(weekly[j].Week) {
			return weekly[i].Week.Before(weekly[j].Week)
		}
		return weekly[i].Store < weekly[j].Store
	})
	return weekly, nil
}

// weekStart truncates t to midnight UTC of its ISO week's Monday.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday's week
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, 1-weekday)
}
