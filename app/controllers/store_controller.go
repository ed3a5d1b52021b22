package controllers

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/posnet/app/models"
	"github.com/shashiranjanraj/posnet/config"
	"github.com/shashiranjanraj/posnet/pkg/database"
	"github.com/shashiranjanraj/posnet/pkg/logger"
	"github.com/shashiranjanraj/posnet/pkg/metrics"
	"gorm.io/gorm"
)

// errNoResult aborts a transaction for a business "no result" (missing row,
// failed precondition). It never escapes a controller: callers see a nil
// result with a nil error and cannot tell the two cases apart.
var errNoResult = errors.New("no result")

// StoreController implements the per-location operations over one store
// database. Mutating operations pull from HQ before the local unit of work
// and push back afterwards; in single-tier deployments both directions are
// no-ops.
type StoreController struct {
	db   *gorm.DB
	sync *SyncController
	cfg  *config.Config
}

// NewStoreController builds a controller over db. sync may be nil when the
// deployment has no HQ tier; cfg supplies the logistics address and the
// store's own id for restock requests.
func NewStoreController(db *gorm.DB, sync *SyncController, cfg *config.Config) *StoreController {
	return &StoreController{db: db, sync: sync, cfg: cfg}
}

// AddProduct creates a product for the given store and returns the
// persisted row.
func (c *StoreController) AddProduct(name string, price float64, category string, storeID *uint) (*models.Product, error) {
	if err := c.pullHQ(); err != nil {
		return nil, err
	}

	prod := models.Product{Name: name, Price: price, Category: category, StoreID: storeID}
	if err := c.db.Create(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, c.pushHQ()
}

// UpdateStock sets a product's stock to quantity. This is an absolute set,
// not a delta. Returns (nil, nil) when the product id is unknown.
func (c *StoreController) UpdateStock(productID uint, quantity int) (*models.Product, error) {
	if err := c.pullHQ(); err != nil {
		return nil, err
	}

	var prod models.Product
	err := c.db.First(&prod, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := c.db.Model(&prod).Update("stock", quantity).Error; err != nil {
		return nil, err
	}
	prod.Stock = quantity

	return &prod, c.pushHQ()
}

// SearchProducts matches term case-insensitively against product name or
// category, optionally filtered to one store.
func (c *StoreController) SearchProducts(term string, storeID *uint) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	query := c.db.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// RecordSale sells quantity units of a product: one Sale with one SaleItem
// whose price is snapshotted from the product, and the stock decremented,
// all in one commit. Returns (nil, nil) when the product is missing or the
// stock is short.
func (c *StoreController) RecordSale(productID uint, quantity int) (*models.Sale, error) {
	if err := c.pullHQ(); err != nil {
		return nil, err
	}

	var sale models.Sale
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoResult
			}
			return err
		}
		if prod.Stock < quantity {
			return errNoResult
		}

		sale = models.Sale{
			StoreID: prod.StoreID,
			Items: []models.SaleItem{{
				ProductID: prod.ID,
				Quantity:  quantity,
				Price:     prod.Price,
			}},
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		return tx.Model(&prod).Update("stock", prod.Stock-quantity).Error
	})
	if errors.Is(err, errNoResult) {
		metrics.SalesRejected.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.SalesRecorded.Inc()
	return &sale, c.pushHQ()
}

// ReturnSale cancels a sale: every item's quantity is added back to the
// referenced product's stock (items whose product no longer exists are
// skipped), then the sale and its items are hard-deleted. Returns false
// when the sale id is unknown.
func (c *StoreController) ReturnSale(saleID uint) (bool, error) {
	if err := c.pullHQ(); err != nil {
		return false, err
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Preload("Items").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoResult
			}
			return err
		}

		for _, item := range sale.Items {
			// Silently skips missing products, matching the sale-time
			// snapshot semantics: the item keeps its recorded price either way.
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Select("Items").Delete(&sale).Error
	})
	if errors.Is(err, errNoResult) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, c.pushHQ()
}

// StockReport lists products, optionally for one store.
func (c *StoreController) StockReport(storeID *uint) ([]models.Product, error) {
	query := c.db
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// RequestReplenishment is the single-tier variant: it moves quantity from
// the CentralStock pool to the product's stock inside one database and one
// commit. Returns false when the pool or the product is missing or the
// pool is short.
func (c *StoreController) RequestReplenishment(storeID, productID uint, quantity int) (bool, error) {
	if err := c.pullHQ(); err != nil {
		return false, err
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		var central models.CentralStock
		if err := tx.Where("product_id = ?", productID).First(&central).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoResult
			}
			return err
		}

		var prod models.Product
		if err := tx.Where("id = ? AND store_id = ?", productID, storeID).First(&prod).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoResult
			}
			return err
		}

		if central.Quantity < quantity {
			return errNoResult
		}

		if err := tx.Model(&central).Update("quantity", central.Quantity-quantity).Error; err != nil {
			return err
		}
		return tx.Model(&prod).Update("stock", prod.Stock+quantity).Error
	})
	if errors.Is(err, errNoResult) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, c.pushHQ()
}

// RequestRestock is the logistics variant: it files a PENDING restock
// request in the logistics database named by the configuration. Returns
// (nil, nil) when no logistics database is configured.
func (c *StoreController) RequestRestock(productID uint, quantity int) (*models.RestockRequest, error) {
	if c.cfg == nil || c.cfg.LogisticsURL == "" {
		return nil, nil
	}

	ldb, err := database.Open(c.cfg.LogisticsURL)
	if err != nil {
		return nil, err
	}
	defer database.Close(ldb)

	req := models.RestockRequest{
		StoreID:   c.cfg.StoreID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    models.RestockPending,
	}
	if err := ldb.Create(&req).Error; err != nil {
		return nil, err
	}

	logger.Info("restock requested", "store", req.StoreID, "product", productID, "quantity", quantity)
	return &req, nil
}

// pullHQ refreshes the local database from HQ before a mutation. A no-op
// without a sync controller or in single-tier topology.
func (c *StoreController) pullHQ() error {
	if c.sync == nil {
		return nil
	}
	_, err := c.sync.SyncFromHQ()
	return err
}

// pushHQ propagates local state to HQ after a mutation. The local unit of
// work has already committed by the time this runs; a push failure is
// surfaced to the caller alongside the committed result.
func (c *StoreController) pushHQ() error {
	if c.sync == nil {
		return nil
	}
	_, err := c.sync.SyncToHQ()
	if err != nil {
		logger.Warn("sync to hq failed after local commit", "err", err)
	}
	return err
}
