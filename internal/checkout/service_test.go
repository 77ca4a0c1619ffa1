package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartsvc "github.com/dukahub/dukapos-backend/internal/cart"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	"github.com/dukahub/dukapos-backend/internal/sales"
	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/migrate"
)

type fixture struct {
	client      *db.Client
	carts       *cartsvc.Service
	catalogSvc  catalog.Service
	catalogRepo *catalog.Repository
	salesRepo   *sales.Repository
	checkout    Service
	storeID     uuid.UUID
	operatorID  uuid.UUID
}

func setup(t *testing.T, name string) *fixture {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrate(client))
	t.Cleanup(func() { _ = client.Close() })

	catalogRepo := catalog.NewRepository(client.DB())
	catalogSvc, err := catalog.NewService(catalogRepo, client)
	require.NoError(t, err)

	salesRepo := sales.NewRepository(client.DB())
	carts := cartsvc.NewService()

	svc, err := NewService(carts, catalogRepo, salesRepo, client)
	require.NoError(t, err)

	return &fixture{
		client:      client,
		carts:       carts,
		catalogSvc:  catalogSvc,
		catalogRepo: catalogRepo,
		salesRepo:   salesRepo,
		checkout:    svc,
		storeID:     uuid.New(),
		operatorID:  uuid.New(),
	}
}

func (f *fixture) addProduct(t *testing.T, name, barcode string, price int64, stock int) *models.Product {
	t.Helper()
	product, err := f.catalogSvc.AddProduct(context.Background(), f.storeID, catalog.ProductInput{
		Name:      name,
		Category:  "General",
		Barcode:   barcode,
		Supplier:  "Supplier",
		Price:     decimal.NewFromInt(price),
		CostPrice: decimal.NewFromInt(price - 10),
		Stock:     stock,
		MinStock:  1,
	})
	require.NoError(t, err)
	return product
}

func TestCommitRecordsSaleAndDecrementsStock(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_commit")
	coke := f.addProduct(t, "Coca Cola 500ml", "12345678901", 80, 120)
	rice := f.addProduct(t, "Rice 2kg", "34567890123", 280, 45)

	_, err := f.carts.Add(f.operatorID, coke, 2)
	require.NoError(t, err)
	_, err = f.carts.Add(f.operatorID, rice, 1)
	require.NoError(t, err)
	f.carts.SetPayment(f.operatorID, "500")

	receipt, err := f.checkout.Commit(context.Background(), f.operatorID, f.storeID, "Mary Wanjiku")
	require.NoError(t, err)
	require.NotNil(t, receipt.Sale)

	assert.True(t, receipt.Sale.Total.Equal(decimal.NewFromInt(440)))
	assert.True(t, receipt.Payment.Equal(decimal.NewFromInt(500)))
	assert.True(t, receipt.Change.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "Mary Wanjiku", receipt.Sale.Cashier)
	assert.Equal(t, f.storeID, receipt.Sale.StoreID)

	loaded, err := f.salesRepo.FindByID(context.Background(), f.storeID, receipt.Sale.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, "Coca Cola 500ml", loaded.Items[0].Name)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, "Rice 2kg", loaded.Items[1].Name)

	cokeAfter, err := f.catalogRepo.FindByID(context.Background(), f.storeID, coke.ID)
	require.NoError(t, err)
	assert.Equal(t, 118, cokeAfter.Stock)

	riceAfter, err := f.catalogRepo.FindByID(context.Background(), f.storeID, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, 44, riceAfter.Stock)

	// cart is gone after a durable commit
	assert.Equal(t, 0, f.carts.Snapshot(f.operatorID).ItemCount)
}

func TestCommitRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_empty")
	f.carts.SetPayment(f.operatorID, "100")

	_, err := f.checkout.Commit(context.Background(), f.operatorID, f.storeID, "Mary Wanjiku")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodePrecondition))
}

func TestCommitRejectsMissingPayment(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_nopayment")
	coke := f.addProduct(t, "Coca Cola 500ml", "12345678901", 80, 120)

	_, err := f.carts.Add(f.operatorID, coke, 1)
	require.NoError(t, err)

	_, err = f.checkout.Commit(context.Background(), f.operatorID, f.storeID, "Mary Wanjiku")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodePrecondition))

	// the draft survives a failed commit
	assert.Equal(t, 1, f.carts.Snapshot(f.operatorID).ItemCount)
}

func TestCommitRejectsInsufficientPayment(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_short")
	coke := f.addProduct(t, "Coca Cola 500ml", "12345678901", 80, 120)

	_, err := f.carts.Add(f.operatorID, coke, 2)
	require.NoError(t, err)
	f.carts.SetPayment(f.operatorID, "100")

	_, err = f.checkout.Commit(context.Background(), f.operatorID, f.storeID, "Mary Wanjiku")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodePrecondition))
}

func TestCommitRollsBackOnOversell(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_oversell")
	coke := f.addProduct(t, "Coca Cola 500ml", "12345678901", 80, 120)
	bread := f.addProduct(t, "White Bread 400g", "23456789012", 65, 8)

	_, err := f.carts.Add(f.operatorID, coke, 2)
	require.NoError(t, err)
	_, err = f.carts.Add(f.operatorID, bread, 5)
	require.NoError(t, err)
	f.carts.SetPayment(f.operatorID, "1000")

	// shelf shrinks between adding and committing
	ok, err := f.catalogRepo.DecrementStock(context.Background(), f.storeID, bread.ID, 6)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.checkout.Commit(context.Background(), f.operatorID, f.storeID, "Mary Wanjiku")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	// nothing moved: the coke decrement rolled back with the failed line
	cokeAfter, err := f.catalogRepo.FindByID(context.Background(), f.storeID, coke.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, cokeAfter.Stock)

	var saleCount int64
	require.NoError(t, f.client.DB().Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Equal(t, int64(0), saleCount)

	// the draft is kept so the operator can fix it up
	assert.Equal(t, 7, f.carts.Snapshot(f.operatorID).ItemCount)
}

func TestCommitRejectsProductFromAnotherStore(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_crossstore")
	coke := f.addProduct(t, "Coca Cola 500ml", "12345678901", 80, 120)

	_, err := f.carts.Add(f.operatorID, coke, 2)
	require.NoError(t, err)
	f.carts.SetPayment(f.operatorID, "500")

	// committing against a different store must not touch this store's shelf
	otherStore := uuid.New()
	_, err = f.checkout.Commit(context.Background(), f.operatorID, otherStore, "Mary Wanjiku")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	cokeAfter, err := f.catalogRepo.FindByID(context.Background(), f.storeID, coke.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, cokeAfter.Stock)

	var saleCount int64
	require.NoError(t, f.client.DB().Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Equal(t, int64(0), saleCount)

	// the draft is kept for the operator to retry
	assert.Equal(t, 2, f.carts.Snapshot(f.operatorID).ItemCount)
}

func TestCommitExactPayment(t *testing.T) {
	t.Parallel()

	f := setup(t, "checkout_exact")
	coke := f.addProduct(t, "Coca Cola 500ml", "12345678901", 80, 120)

	_, err := f.carts.Add(f.operatorID, coke, 1)
	require.NoError(t, err)
	f.carts.SetPayment(f.operatorID, "80")

	receipt, err := f.checkout.Commit(context.Background(), f.operatorID, f.storeID, "Mary Wanjiku")
	require.NoError(t, err)
	assert.True(t, receipt.Change.IsZero())
}
