package controllers_test

import (
	"testing"

	"github.com/shashiranjanraj/posnet/app/controllers"
	"github.com/shashiranjanraj/posnet/app/models"
	"github.com/shashiranjanraj/posnet/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// productState is the comparable projection used to assert that repeated
// syncs leave the target unchanged.
type productState struct {
	ID    uint
	Name  string
	Price float64
	Stock int
}

func snapshotProducts(t *testing.T, db *gorm.DB) []productState {
	t.Helper()
	var rows []productState
	if err := db.Model(&models.Product{}).Order("id").Scan(&rows).Error; err != nil {
		t.Fatalf("snapshot products: %v", err)
	}
	return rows
}

func TestSyncToHQ_SingleTierIsNoOp(t *testing.T) {
	db := testutil.NewDB(t)
	sync := controllers.NewSyncController(db, nil, false)

	ran, err := sync.SyncToHQ()
	if err != nil {
		t.Fatalf("SyncToHQ: %v", err)
	}
	if ran {
		t.Error("SyncToHQ ran in single-tier topology")
	}

	ran, err = sync.SyncFromHQ()
	if err != nil {
		t.Fatalf("SyncFromHQ: %v", err)
	}
	if ran {
		t.Error("SyncFromHQ ran in single-tier topology")
	}
}

func TestSyncToHQ_PushesAllTables(t *testing.T) {
	_, local := testutil.NewTier(t)
	_, hq := testutil.NewTier(t)
	sync := controllers.NewSyncController(local, hq, true)

	local.Create(&models.Store{ID: 1, Name: "S1", DBURL: "sqlite://unused.db"})
	local.Create(&models.Product{ID: 1, Name: "Widget", Price: 2.0, Stock: 7, StoreID: ptr(1)})
	local.Create(&models.Sale{ID: 1, StoreID: ptr(1), Items: []models.SaleItem{{ProductID: 1, Quantity: 2, Price: 2.0}}})
	local.Create(&models.CentralStock{ID: 1, ProductID: 1, Quantity: 50})

	ran, err := sync.SyncToHQ()
	require.NoError(t, err)
	require.True(t, ran)

	var counts = map[string]int64{}
	for table, model := range map[string]any{
		"stores":        &models.Store{},
		"products":      &models.Product{},
		"sales":         &models.Sale{},
		"sale_items":    &models.SaleItem{},
		"central_stock": &models.CentralStock{},
	} {
		var n int64
		require.NoError(t, hq.Model(model).Count(&n).Error)
		counts[table] = n
	}
	for table, n := range counts {
		require.EqualValues(t, 1, n, "table %s", table)
	}

	var prod models.Product
	require.NoError(t, hq.First(&prod, 1).Error)
	require.Equal(t, "Widget", prod.Name)
	require.Equal(t, 7, prod.Stock)
}

func TestSyncToHQ_Idempotent(t *testing.T) {
	_, local := testutil.NewTier(t)
	_, hq := testutil.NewTier(t)
	sync := controllers.NewSyncController(local, hq, true)

	local.Create(&models.Product{ID: 1, Name: "Widget", Price: 2.0, Stock: 7})
	local.Create(&models.Product{ID: 2, Name: "Gadget", Price: 5.0, Stock: 3})

	_, err := sync.SyncToHQ()
	require.NoError(t, err)
	first := snapshotProducts(t, hq)

	// No intervening local mutation: the second pass must change nothing.
	_, err = sync.SyncToHQ()
	require.NoError(t, err)
	second := snapshotProducts(t, hq)

	require.Equal(t, first, second)
	var n int64
	hq.Model(&models.Product{}).Count(&n)
	require.EqualValues(t, 2, n)
}

func TestSyncToHQ_LastWriterWins(t *testing.T) {
	_, local := testutil.NewTier(t)
	_, hq := testutil.NewTier(t)
	sync := controllers.NewSyncController(local, hq, true)

	// HQ already holds a diverged copy of the same primary key.
	hq.Create(&models.Product{ID: 1, Name: "Widget", Price: 9.0, Stock: 99})
	local.Create(&models.Product{ID: 1, Name: "Widget", Price: 2.0, Stock: 7})

	_, err := sync.SyncToHQ()
	require.NoError(t, err)

	var prod models.Product
	require.NoError(t, hq.First(&prod, 1).Error)
	require.Equal(t, 2.0, prod.Price, "local row should overwrite the HQ copy")
	require.Equal(t, 7, prod.Stock)
}

func TestSyncFromHQ_ReattachesSaleItems(t *testing.T) {
	_, local := testutil.NewTier(t)
	_, hq := testutil.NewTier(t)
	sync := controllers.NewSyncController(local, hq, true)

	hq.Create(&models.Product{ID: 1, Name: "Widget", Price: 2.0, Stock: 7})
	hq.Create(&models.Sale{ID: 1, Items: []models.SaleItem{
		{ProductID: 1, Quantity: 2, Price: 2.0},
		{ProductID: 1, Quantity: 1, Price: 2.0},
	}})

	ran, err := sync.SyncFromHQ()
	require.NoError(t, err)
	require.True(t, ran)

	var sale models.Sale
	require.NoError(t, local.Preload("Items").First(&sale, 1).Error)
	require.Len(t, sale.Items, 2, "child items must be merged individually after the parent")

	var prod models.Product
	require.NoError(t, local.First(&prod, 1).Error)
	require.Equal(t, "Widget", prod.Name)
}

func TestSyncProductToStore(t *testing.T) {
	storeURL, storeDB := testutil.NewTier(t)
	logistics := testutil.NewDB(t)
	sync := controllers.NewSyncController(logistics, nil, false)

	store := models.Store{ID: 1, Name: "S1", DBURL: storeURL}

	// Absent product: inserted with stock.
	err := sync.SyncProductToStore(store, models.Product{ID: 1, Name: "Widget", Price: 2.0, Category: "cat", Stock: 4})
	require.NoError(t, err)

	var prod models.Product
	require.NoError(t, storeDB.First(&prod, 1).Error)
	require.Equal(t, 4, prod.Stock)

	// Present product: mutable fields overwritten, store keeps its stock.
	storeDB.Model(&models.Product{}).Where("id = ?", 1).Update("stock", 11)
	err = sync.SyncProductToStore(store, models.Product{ID: 1, Name: "Widget v2", Price: 3.5, Category: "cat2", Stock: 0})
	require.NoError(t, err)

	require.NoError(t, storeDB.First(&prod, 1).Error)
	require.Equal(t, "Widget v2", prod.Name)
	require.Equal(t, 3.5, prod.Price)
	require.Equal(t, "cat2", prod.Category)
	require.Equal(t, 11, prod.Stock, "existing store stock must not be overwritten")
}

func TestAddOrUpdateProduct_FansOutToEveryStore(t *testing.T) {
	_, logistics := testutil.NewTier(t)
	store1URL, store1 := testutil.NewTier(t)
	store2URL, store2 := testutil.NewTier(t)
	sync := controllers.NewSyncController(logistics, nil, false)

	logistics.Create(&models.Store{ID: 1, Name: "S1", DBURL: store1URL})
	logistics.Create(&models.Store{ID: 2, Name: "S2", DBURL: store2URL})

	_, err := sync.AddOrUpdateProduct(&models.Product{ID: 1, Name: "Widget", Price: 2.0, Stock: 0})
	require.NoError(t, err)

	for i, db := range []*gorm.DB{store1, store2} {
		var prod models.Product
		require.NoError(t, db.First(&prod, 1).Error, "store %d", i+1)
		require.Equal(t, "Widget", prod.Name)
	}
}

func TestConsolidatedReport(t *testing.T) {
	_, logistics := testutil.NewTier(t)
	store1URL, store1 := testutil.NewTier(t)
	store2URL, _ := testutil.NewTier(t)
	sync := controllers.NewSyncController(logistics, nil, false)

	logistics.Create(&models.Store{ID: 1, Name: "S1", DBURL: store1URL})
	logistics.Create(&models.Store{ID: 2, Name: "S2", DBURL: store2URL})

	store1.Create(&models.Sale{ID: 1, Items: []models.SaleItem{
		{ProductID: 1, Quantity: 2, Price: 2.0},
		{ProductID: 2, Quantity: 1, Price: 5.0},
	}})

	totals, err := sync.ConsolidatedReport()
	require.NoError(t, err)
	require.Equal(t, []controllers.StoreRevenue{
		{Store: "S1", Revenue: 9.0},
		{Store: "S2", Revenue: 0.0},
	}, totals)
}

func TestStoreControllerSyncWrapping(t *testing.T) {
	_, local := testutil.NewTier(t)
	_, hq := testutil.NewTier(t)
	sync := controllers.NewSyncController(local, hq, true)
	c := controllers.NewStoreController(local, sync, nil)

	prod, err := c.AddProduct("Widget", 2.0, "", nil)
	require.NoError(t, err)

	// The post-mutation push must have landed the product at HQ.
	var hqProd models.Product
	require.NoError(t, hq.First(&hqProd, prod.ID).Error)
	require.Equal(t, "Widget", hqProd.Name)

	// A change made at HQ is pulled before the next local mutation.
	hq.Model(&models.Product{}).Where("id = ?", prod.ID).Update("price", 8.0)
	_, err = c.UpdateStock(prod.ID, 5)
	require.NoError(t, err)

	var localProd models.Product
	require.NoError(t, local.First(&localProd, prod.ID).Error)
	require.Equal(t, 8.0, localProd.Price)
	require.Equal(t, 5, localProd.Stock)
}

func TestSyncProductToStore_BadURL(t *testing.T) {
	logistics := testutil.NewDB(t)
	sync := controllers.NewSyncController(logistics, nil, false)

	err := sync.SyncProductToStore(
		models.Store{ID: 1, Name: "S1", DBURL: "not-a-url"},
		models.Product{ID: 1, Name: "Widget", Price: 2.0},
	)
	require.Error(t, err)
}
