package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/posnet/app/models"
	"github.com/shashiranjanraj/posnet/pkg/cache"
	"github.com/shashiranjanraj/posnet/pkg/database"
	"github.com/shashiranjanraj/posnet/pkg/logger"
	"github.com/shashiranjanraj/posnet/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const consolidatedReportTTL = 30 * time.Second

// SyncController reconciles two independently-owned databases with
// whole-row merges: every row is upserted by primary key, last writer
// wins. There is no versioning and no conflict detection.
//
// multiTier is the explicit topology flag. When false (no separate HQ
// database configured) both sync directions return without touching either
// connection, so a single-tier deployment never merges a database into
// itself.
type SyncController struct {
	local     *gorm.DB
	hq        *gorm.DB
	multiTier bool
}

// NewSyncController builds a controller between the local and HQ
// connections. In HQ/logistics deployments "local" is the
// central/logistics database itself.
func NewSyncController(local, hq *gorm.DB, multiTier bool) *SyncController {
	return &SyncController{local: local, hq: hq, multiTier: multiTier}
}

// StoreRevenue is one row of the consolidated cross-store report.
type StoreRevenue struct {
	Store   string  `json:"store"`
	Revenue float64 `json:"revenue"`
}

// mergeRows upserts every row of T from src into dst by primary key.
// Associations are deliberately not followed: parent and child tables are
// merged as independent row sets.
func mergeRows[T any](src, dst *gorm.DB) error {
	var rows []T
	if err := src.Find(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		if err := dst.Clauses(clause.OnConflict{UpdateAll: true}).
			Omit(clause.Associations).
			Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SyncToHQ pushes every row of every core table from the local database
// into HQ. Returns false without touching anything in single-tier
// topology.
func (c *SyncController) SyncToHQ() (bool, error) {
	if !c.multiTier {
		metrics.SyncRuns.WithLabelValues("to_hq", "skipped").Inc()
		return false, nil
	}

	err := func() error {
		if err := mergeRows[models.Store](c.local, c.hq); err != nil {
			return fmt.Errorf("stores: %w", err)
		}
		if err := mergeRows[models.Product](c.local, c.hq); err != nil {
			return fmt.Errorf("products: %w", err)
		}
		if err := mergeRows[models.Sale](c.local, c.hq); err != nil {
			return fmt.Errorf("sales: %w", err)
		}
		if err := mergeRows[models.SaleItem](c.local, c.hq); err != nil {
			return fmt.Errorf("sale items: %w", err)
		}
		if err := mergeRows[models.CentralStock](c.local, c.hq); err != nil {
			return fmt.Errorf("central stock: %w", err)
		}
		return nil
	}()
	if err != nil {
		metrics.SyncRuns.WithLabelValues("to_hq", "error").Inc()
		return false, fmt.Errorf("sync to hq: %w", err)
	}

	metrics.SyncRuns.WithLabelValues("to_hq", "ok").Inc()
	logger.Debug("sync to hq complete")
	return true, nil
}

// SyncFromHQ pulls every row of every core table from HQ into the local
// database. Sales are merged parent-first, then each sale's items
// individually: upserting a Sale row does not cascade to its items.
func (c *SyncController) SyncFromHQ() (bool, error) {
	if !c.multiTier {
		metrics.SyncRuns.WithLabelValues("from_hq", "skipped").Inc()
		return false, nil
	}

	err := func() error {
		if err := mergeRows[models.Store](c.hq, c.local); err != nil {
			return fmt.Errorf("stores: %w", err)
		}
		if err := mergeRows[models.Product](c.hq, c.local); err != nil {
			return fmt.Errorf("products: %w", err)
		}
		if err := mergeRows[models.CentralStock](c.hq, c.local); err != nil {
			return fmt.Errorf("central stock: %w", err)
		}

		var sales []models.Sale
		if err := c.hq.Preload("Items").Find(&sales).Error; err != nil {
			return fmt.Errorf("sales: %w", err)
		}
		for i := range sales {
			if err := c.local.Clauses(clause.OnConflict{UpdateAll: true}).
				Omit(clause.Associations).
				Create(&sales[i]).Error; err != nil {
				return fmt.Errorf("sale %d: %w", sales[i].ID, err)
			}
			for j := range sales[i].Items {
				if err := c.local.Clauses(clause.OnConflict{UpdateAll: true}).
					Create(&sales[i].Items[j]).Error; err != nil {
					return fmt.Errorf("sale %d item: %w", sales[i].ID, err)
				}
			}
		}
		return nil
	}()
	if err != nil {
		metrics.SyncRuns.WithLabelValues("from_hq", "error").Inc()
		return false, fmt.Errorf("sync from hq: %w", err)
	}

	metrics.SyncRuns.WithLabelValues("from_hq", "ok").Inc()
	logger.Debug("sync from hq complete")
	return true, nil
}

// SyncProductToStore pushes one product snapshot into the store's own
// database, opened ad hoc from Store.DBURL. If the product id already
// exists there, the mutable fields (name, price, category) are overwritten
// in place and the store keeps its own stock count; otherwise the full row
// including stock is inserted. One commit, connection closed afterwards.
func (c *SyncController) SyncProductToStore(store models.Store, product models.Product) error {
	start := time.Now()
	defer func() { metrics.FanoutDuration.Observe(time.Since(start).Seconds()) }()

	db, err := database.Open(store.DBURL)
	if err != nil {
		return fmt.Errorf("sync product to store %q: %w", store.Name, err)
	}
	defer database.Close(db)

	var existing models.Product
	err = db.First(&existing, product.ID).Error
	switch {
	case err == nil:
		err = db.Model(&existing).Updates(map[string]any{
			"name":     product.Name,
			"price":    product.Price,
			"category": product.Category,
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.Product{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Category: product.Category,
			Stock:    product.Stock,
		}
		err = db.Create(&row).Error
	}
	if err != nil {
		return fmt.Errorf("sync product to store %q: %w", store.Name, err)
	}
	return nil
}

// AddOrUpdateProduct merges a product into the central database and fans
// the snapshot out to every registered store, one store at a time. There
// is no partial-failure tracking: a failure at store N leaves stores
// 1..N-1 already committed, and the error is returned as-is.
func (c *SyncController) AddOrUpdateProduct(product *models.Product) (*models.Product, error) {
	if err := c.local.Clauses(clause.OnConflict{UpdateAll: true}).
		Omit(clause.Associations).
		Create(product).Error; err != nil {
		return nil, fmt.Errorf("add or update product: %w", err)
	}

	var stores []models.Store
	if err := c.local.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("add or update product: list stores: %w", err)
	}

	for _, store := range stores {
		if err := c.SyncProductToStore(store, *product); err != nil {
			metrics.SyncRuns.WithLabelValues("fan_out", "error").Inc()
			logger.Warn("product fan-out aborted mid-sequence",
				"product", product.ID, "store", store.Name, "err", err)
			return nil, err
		}
	}

	metrics.SyncRuns.WithLabelValues("fan_out", "ok").Inc()
	logger.Info("product fanned out", "product", product.ID, "stores", len(stores))
	return product, nil
}

// ConsolidatedReport sums quantity*price over each registered store's
// sale_items by opening a fresh connection per store. Results are cached
// briefly when Redis is configured; the fan-out is otherwise recomputed on
// every call.
func (c *SyncController) ConsolidatedReport() ([]StoreRevenue, error) {
	const cacheKey = "report:consolidated"

	var cached []StoreRevenue
	if cache.Get(cacheKey, &cached) {
		return cached, nil
	}

	var stores []models.Store
	if err := c.local.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("consolidated report: list stores: %w", err)
	}

	totals := make([]StoreRevenue, 0, len(stores))
	for _, store := range stores {
		db, err := database.Open(store.DBURL)
		if err != nil {
			return nil, fmt.Errorf("consolidated report: store %q: %w", store.Name, err)
		}

		var total float64
		err = db.Model(&models.SaleItem{}).
			Select("COALESCE(SUM(quantity * price), 0)").
			Scan(&total).Error
		database.Close(db)
		if err != nil {
			return nil, fmt.Errorf("consolidated report: store %q: %w", store.Name, err)
		}

		totals = append(totals, StoreRevenue{Store: store.Name, Revenue: total})
	}

	if err := cache.Set(cacheKey, totals, consolidatedReportTTL); err != nil {
		logger.Warn("consolidated report cache write failed", "err", err)
	}
	return totals, nil
}
