package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	"github.com/dukahub/dukapos-backend/pkg/enums"
	"github.com/dukahub/dukapos-backend/pkg/logger"
	"github.com/dukahub/dukapos-backend/pkg/security"
)

// Stable ids so a reseeded environment keeps the same references.
var (
	SeedStoreNaivasID = uuid.MustParse("7b1f42d0-0e5a-4c1b-9e57-0a2a7b9f1001")
	SeedStoreTuskysID = uuid.MustParse("7b1f42d0-0e5a-4c1b-9e57-0a2a7b9f1002")

	SeedUserAdminID   = uuid.MustParse("90c3aa5e-4a11-4f45-8f2e-63b2d8aa2001")
	SeedUserManagerID = uuid.MustParse("90c3aa5e-4a11-4f45-8f2e-63b2d8aa2002")
	SeedUserCashierID = uuid.MustParse("90c3aa5e-4a11-4f45-8f2e-63b2d8aa2003")

	SeedProductCokeID  = uuid.MustParse("54e8d4a7-2d8b-47a5-92cf-7f31c0de3001")
	SeedProductBreadID = uuid.MustParse("54e8d4a7-2d8b-47a5-92cf-7f31c0de3002")
	SeedProductRiceID  = uuid.MustParse("54e8d4a7-2d8b-47a5-92cf-7f31c0de3003")
)

// SeedDemoPassword is the credential every demo operator is created with.
const SeedDemoPassword = "duka1234"

// SeedDemo loads the demo dataset into an empty database: two stores, three
// operators (one per role), three products, one historical sale and one
// pending purchase order. A database that already has products is left alone.
func SeedDemo(ctx context.Context, client *db.Client, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(SeedDemoPassword, passwordCfg)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		stores := []models.Store{
			{
				ID:           SeedStoreNaivasID,
				Name:         "Naivas Westlands",
				Location:     "Westlands, Nairobi",
				Subscription: enums.SubscriptionPlanPremium,
				ExpiresAt:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
				Status:       enums.StoreStatusActive,
			},
			{
				ID:           SeedStoreTuskysID,
				Name:         "Tuskys Mombasa",
				Location:     "Mombasa, Kenya",
				Subscription: enums.SubscriptionPlanStandard,
				ExpiresAt:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
				Status:       enums.StoreStatusActive,
			},
		}
		if err := tx.Create(&stores).Error; err != nil {
			return err
		}

		operators := []models.User{
			{
				ID:           SeedUserAdminID,
				StoreID:      SeedStoreNaivasID,
				Name:         "John Kamau",
				Email:        "john@naivas.com",
				PasswordHash: hash,
				Role:         enums.RoleAdmin,
			},
			{
				ID:           SeedUserManagerID,
				StoreID:      SeedStoreNaivasID,
				Name:         "Grace Njeri",
				Email:        "grace@naivas.com",
				PasswordHash: hash,
				Role:         enums.RoleManager,
			},
			{
				ID:           SeedUserCashierID,
				StoreID:      SeedStoreNaivasID,
				Name:         "Mary Wanjiku",
				Email:        "mary@naivas.com",
				PasswordHash: hash,
				Role:         enums.RoleCashier,
			},
		}
		if err := tx.Create(&operators).Error; err != nil {
			return err
		}

		products := []models.Product{
			{
				ID:        SeedProductCokeID,
				StoreID:   SeedStoreNaivasID,
				Name:      "Coca Cola 500ml",
				Category:  "Beverages",
				Barcode:   "12345678901",
				Price:     decimal.NewFromInt(80),
				CostPrice: decimal.NewFromInt(60),
				Stock:     120,
				MinStock:  20,
				Supplier:  "Coca Cola Kenya",
			},
			{
				ID:        SeedProductBreadID,
				StoreID:   SeedStoreNaivasID,
				Name:      "White Bread 400g",
				Category:  "Bakery",
				Barcode:   "23456789012",
				Price:     decimal.NewFromInt(65),
				CostPrice: decimal.NewFromInt(45),
				Stock:     8,
				MinStock:  15,
				Supplier:  "Superloaf",
			},
			{
				ID:        SeedProductRiceID,
				StoreID:   SeedStoreNaivasID,
				Name:      "Rice 2kg",
				Category:  "Grains",
				Barcode:   "34567890123",
				Price:     decimal.NewFromInt(280),
				CostPrice: decimal.NewFromInt(220),
				Stock:     45,
				MinStock:  10,
				Supplier:  "Mwea Rice",
			},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		sale := models.Sale{
			StoreID:    SeedStoreNaivasID,
			OccurredAt: time.Date(2025, 8, 11, 14, 30, 0, 0, time.Local),
			Cashier:    "Mary Wanjiku",
			Total:      decimal.NewFromInt(440),
			Items: []models.SaleItem{
				{ProductID: SeedProductCokeID, Name: "Coca Cola 500ml", Quantity: 2, UnitPrice: decimal.NewFromInt(80), Position: 0},
				{ProductID: SeedProductRiceID, Name: "Rice 2kg", Quantity: 1, UnitPrice: decimal.NewFromInt(280), Position: 1},
			},
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		order := models.PurchaseOrder{
			StoreID:   SeedStoreNaivasID,
			Supplier:  "Coca Cola Kenya",
			Status:    enums.PurchaseOrderStatusPending,
			OrderedAt: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
			Total:     decimal.NewFromInt(3000),
			Items: []models.PurchaseOrderItem{
				{ProductID: SeedProductCokeID, Name: "Coca Cola 500ml", Quantity: 50, CostPrice: decimal.NewFromInt(60), Position: 0},
			},
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "demo dataset seeded")
	}
	return nil
}
