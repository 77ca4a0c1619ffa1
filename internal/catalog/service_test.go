package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/migrate"
)

func setupTestClient(t *testing.T, name string) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrate(client))
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func setupService(t *testing.T, name string) (Service, *Repository, *db.Client) {
	t.Helper()

	client := setupTestClient(t, name)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	return svc, repo, client
}

func validInput() ProductInput {
	return ProductInput{
		Name:      "Coca Cola 500ml",
		Category:  "Beverages",
		Barcode:   "12345678901",
		Supplier:  "Coca Cola Kenya",
		Price:     decimal.NewFromInt(80),
		CostPrice: decimal.NewFromInt(60),
		Stock:     120,
		MinStock:  20,
	}
}

func TestAddAndGetProduct(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_add")
	storeID := uuid.New()

	created, err := svc.AddProduct(context.Background(), storeID, validInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	loaded, err := svc.GetProduct(context.Background(), storeID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coca Cola 500ml", loaded.Name)
	assert.Equal(t, storeID, loaded.StoreID)
	assert.True(t, loaded.Price.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 120, loaded.Stock)
}

func TestAddProductValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_validation")

	input := validInput()
	input.Name = "  "
	input.Price = decimal.Zero
	input.Stock = -1

	_, err := svc.AddProduct(context.Background(), uuid.New(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "price")
	assert.Contains(t, details, "stock")
}

func TestAddProductCostAbovePrice(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_margin")

	input := validInput()
	input.CostPrice = decimal.NewFromInt(90)

	_, err := svc.AddProduct(context.Background(), uuid.New(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "cost_price")
}

func TestAddProductDuplicateBarcode(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_barcode")
	storeID := uuid.New()

	_, err := svc.AddProduct(context.Background(), storeID, validInput())
	require.NoError(t, err)

	dup := validInput()
	dup.Name = "Coke Clone"
	_, err = svc.AddProduct(context.Background(), storeID, dup)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	// same barcode in another store is fine
	_, err = svc.AddProduct(context.Background(), uuid.New(), validInput())
	require.NoError(t, err)
}

func TestUpdateProductReplacesFields(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_update")
	storeID := uuid.New()

	created, err := svc.AddProduct(context.Background(), storeID, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Name = "Coca Cola 1L"
	input.Price = decimal.NewFromInt(140)
	input.CostPrice = decimal.NewFromInt(100)
	input.Stock = 60

	updated, err := svc.UpdateProduct(context.Background(), storeID, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, storeID, updated.StoreID)
	assert.Equal(t, "Coca Cola 1L", updated.Name)
	assert.Equal(t, 60, updated.Stock)
}

func TestUpdateProductNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_update_missing")

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), uuid.New(), validInput())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_delete")
	storeID := uuid.New()

	created, err := svc.AddProduct(context.Background(), storeID, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), storeID, created.ID))

	_, err = svc.GetProduct(context.Background(), storeID, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.DeleteProduct(context.Background(), storeID, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_adjust")
	storeID := uuid.New()

	input := validInput()
	input.Stock = 5
	created, err := svc.AddProduct(context.Background(), storeID, input)
	require.NoError(t, err)

	// selling 8 of 5 floors the stock rather than going negative
	applied, err := svc.AdjustStock(context.Background(), storeID, []StockAdjustment{
		{ProductID: created.ID, QuantityDelta: 8},
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{created.ID}, applied)

	loaded, err := svc.GetProduct(context.Background(), storeID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Stock)
}

func TestAdjustStockSkipsMissingProducts(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_adjust_missing")
	storeID := uuid.New()

	created, err := svc.AddProduct(context.Background(), storeID, validInput())
	require.NoError(t, err)

	applied, err := svc.AdjustStock(context.Background(), storeID, []StockAdjustment{
		{ProductID: uuid.New(), QuantityDelta: 3},
		{ProductID: created.ID, QuantityDelta: 20},
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{created.ID}, applied)

	loaded, err := svc.GetProduct(context.Background(), storeID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, loaded.Stock)
}

func TestAdjustStockNegativeDeltaRestocks(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_restock")
	storeID := uuid.New()

	created, err := svc.AddProduct(context.Background(), storeID, validInput())
	require.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), storeID, []StockAdjustment{
		{ProductID: created.ID, QuantityDelta: -30},
	})
	require.NoError(t, err)

	loaded, err := svc.GetProduct(context.Background(), storeID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, loaded.Stock)
}

func TestLowStockItems(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_lowstock")
	storeID := uuid.New()

	healthy := validInput()
	_, err := svc.AddProduct(context.Background(), storeID, healthy)
	require.NoError(t, err)

	low := validInput()
	low.Name = "White Bread 400g"
	low.Barcode = "23456789012"
	low.Stock = 8
	low.MinStock = 15
	lowProduct, err := svc.AddProduct(context.Background(), storeID, low)
	require.NoError(t, err)

	boundary := validInput()
	boundary.Name = "Milk 500ml"
	boundary.Barcode = "45678901234"
	boundary.Stock = 10
	boundary.MinStock = 10
	boundaryProduct, err := svc.AddProduct(context.Background(), storeID, boundary)
	require.NoError(t, err)

	items, err := svc.LowStockItems(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	ids := []uuid.UUID{items[0].ID, items[1].ID}
	assert.Contains(t, ids, lowProduct.ID)
	assert.Contains(t, ids, boundaryProduct.ID)
}

func TestTotalInventoryValue(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_value")
	storeID := uuid.New()

	first := validInput()
	first.Stock = 120
	_, err := svc.AddProduct(context.Background(), storeID, first)
	require.NoError(t, err)

	second := validInput()
	second.Name = "Rice 2kg"
	second.Barcode = "34567890123"
	second.CostPrice = decimal.NewFromInt(220)
	second.Price = decimal.NewFromInt(280)
	second.Stock = 45
	_, err = svc.AddProduct(context.Background(), storeID, second)
	require.NoError(t, err)

	total, err := svc.TotalInventoryValue(context.Background(), storeID)
	require.NoError(t, err)

	// 120*60 + 45*220
	assert.True(t, total.Equal(decimal.NewFromInt(17100)), "got %s", total)
}

func TestListProductsScopedToStore(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_scope")
	storeA := uuid.New()
	storeB := uuid.New()

	_, err := svc.AddProduct(context.Background(), storeA, validInput())
	require.NoError(t, err)

	other := validInput()
	other.Barcode = "99999999999"
	_, err = svc.AddProduct(context.Background(), storeB, other)
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background(), storeA)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, storeA, products[0].StoreID)
}

func TestProductOpsRejectOtherStoresIDs(t *testing.T) {
	t.Parallel()

	svc, _, _ := setupService(t, "catalog_cross_store")
	storeA := uuid.New()
	storeB := uuid.New()

	created, err := svc.AddProduct(context.Background(), storeA, validInput())
	require.NoError(t, err)

	// another store addressing the product by id sees it as missing
	_, err = svc.GetProduct(context.Background(), storeB, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.UpdateProduct(context.Background(), storeB, created.ID, validInput())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.DeleteProduct(context.Background(), storeB, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	// stock adjustments from the wrong store skip the row entirely
	applied, err := svc.AdjustStock(context.Background(), storeB, []StockAdjustment{
		{ProductID: created.ID, QuantityDelta: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, applied)

	loaded, err := svc.GetProduct(context.Background(), storeA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, loaded.Stock)
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	t.Parallel()

	client := setupTestClient(t, "catalog_seed")

	require.NoError(t, SeedDemo(context.Background(), client, config.PasswordConfig{}, nil))
	require.NoError(t, SeedDemo(context.Background(), client, config.PasswordConfig{}, nil))

	var products int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(3), products)

	var users int64
	require.NoError(t, client.DB().Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(3), users)
}
