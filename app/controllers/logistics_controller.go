package controllers

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/posnet/app/models"
	"github.com/shashiranjanraj/posnet/pkg/database"
	"github.com/shashiranjanraj/posnet/pkg/logger"
	"github.com/shashiranjanraj/posnet/pkg/metrics"
	"gorm.io/gorm"
)

// LogisticsController owns the warehouse tier: the LogisticsStock pool,
// the store registry, and the restock request queue.
type LogisticsController struct {
	db *gorm.DB
}

// NewLogisticsController builds a controller over the logistics database.
func NewLogisticsController(db *gorm.DB) *LogisticsController {
	return &LogisticsController{db: db}
}

// ListStock returns the warehouse pool rows.
func (c *LogisticsController) ListStock() ([]models.LogisticsStock, error) {
	var stock []models.LogisticsStock
	if err := c.db.Find(&stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

// PendingRequests returns every restock request still awaiting approval.
func (c *LogisticsController) PendingRequests() ([]models.RestockRequest, error) {
	var requests []models.RestockRequest
	if err := c.db.Where("status = ?", models.RestockPending).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// RegisterStore records a store and the connection string of its own
// database so later approvals can reach it.
func (c *LogisticsController) RegisterStore(name, dbURL string) (*models.Store, error) {
	store := models.Store{Name: name, DBURL: dbURL}
	if err := c.db.Create(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ApproveRequestByID transitions a restock request PENDING → APPROVED.
//
// The pool decrement plus status change commit first, against the
// logistics database; the store's stock increment commits second, against
// the store's own database opened from its registered URL. The two commits
// are independent: if the second fails the pool stays decremented with no
// compensation, and the already-approved request is returned together with
// the error.
//
// Returns (nil, nil) when the request is missing or not PENDING, or when
// the pool row is missing or short.
func (c *LogisticsController) ApproveRequestByID(rid uint) (*models.RestockRequest, error) {
	var req models.RestockRequest
	if err := c.db.First(&req, rid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RestockApprovals.WithLabelValues("rejected").Inc()
			return nil, nil
		}
		return nil, err
	}
	if req.Status != models.RestockPending {
		metrics.RestockApprovals.WithLabelValues("rejected").Inc()
		return nil, nil
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		var pool models.LogisticsStock
		if err := tx.Where("product_id = ?", req.ProductID).First(&pool).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoResult
			}
			return err
		}
		if pool.Quantity < req.Quantity {
			return errNoResult
		}

		if err := tx.Model(&pool).Update("quantity", pool.Quantity-req.Quantity).Error; err != nil {
			return err
		}
		return tx.Model(&req).Update("status", models.RestockApproved).Error
	})
	if errors.Is(err, errNoResult) {
		metrics.RestockApprovals.WithLabelValues("rejected").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("approve restock %d: %w", rid, err)
	}
	req.Status = models.RestockApproved

	if err := c.applyToStore(&req); err != nil {
		metrics.RestockApprovals.WithLabelValues("store_unreachable").Inc()
		logger.Error("restock approved but store update failed; pool already decremented",
			"request", rid, "store", req.StoreID, "err", err)
		return &req, err
	}

	metrics.RestockApprovals.WithLabelValues("approved").Inc()
	logger.Info("restock approved", "request", rid, "store", req.StoreID,
		"product", req.ProductID, "quantity", req.Quantity)
	return &req, nil
}

// applyToStore increments the originating store's product stock in that
// store's own database. Unknown stores and unknown products are skipped
// silently, matching the registry's advisory nature.
func (c *LogisticsController) applyToStore(req *models.RestockRequest) error {
	var store models.Store
	if err := c.db.First(&store, req.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	sdb, err := database.Open(store.DBURL)
	if err != nil {
		return err
	}
	defer database.Close(sdb)

	return sdb.Model(&models.Product{}).
		Where("id = ?", req.ProductID).
		Update("stock", gorm.Expr("stock + ?", req.Quantity)).Error
}
