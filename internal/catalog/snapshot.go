package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/redis"
)

// Collection keys mirror the logical names the catalog has always been
// persisted under.
const (
	snapshotProducts       = "inventory_products"
	snapshotSales          = "inventory_sales"
	snapshotPurchaseOrders = "inventory_purchase_orders"
	snapshotStores         = "inventory_stores"
)

// SnapshotData is the full export of the catalog collections.
type SnapshotData struct {
	Stores         []models.Store         `json:"stores"`
	Products       []models.Product       `json:"products"`
	Sales          []models.Sale          `json:"sales"`
	PurchaseOrders []models.PurchaseOrder `json:"purchase_orders"`
}

// Snapshot exports and imports the catalog collections through the key-value
// persistence collaborator. Importing into a fresh database reproduces the
// collections field for field.
type Snapshot struct {
	dbClient *db.Client
	kv       redis.KV
}

// NewSnapshot builds the snapshot service. The kv store may be nil when only
// direct Export/Import are needed.
func NewSnapshot(dbClient *db.Client, kv redis.KV) (*Snapshot, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &Snapshot{dbClient: dbClient, kv: kv}, nil
}

// Export reads every collection, including sale and purchase order items.
func (s *Snapshot) Export(ctx context.Context) (*SnapshotData, error) {
	conn := s.dbClient.DB().WithContext(ctx)
	data := &SnapshotData{}

	if err := conn.Order("created_at").Find(&data.Stores).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export stores")
	}
	if err := conn.Order("created_at").Find(&data.Products).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export products")
	}
	if err := conn.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Order("occurred_at desc").Find(&data.Sales).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export sales")
	}
	if err := conn.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Order("created_at").Find(&data.PurchaseOrders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export purchase orders")
	}

	return data, nil
}

// Import replaces the catalog collections with the snapshot contents in one
// transaction.
func (s *Snapshot) Import(ctx context.Context, data *SnapshotData) error {
	if data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "snapshot data is required")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.PurchaseOrderItem{},
			&models.PurchaseOrder{},
			&models.SaleItem{},
			&models.Sale{},
			&models.Product{},
			&models.Store{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if len(data.Stores) > 0 {
			if err := tx.Create(&data.Stores).Error; err != nil {
				return err
			}
		}
		if len(data.Products) > 0 {
			if err := tx.Create(&data.Products).Error; err != nil {
				return err
			}
		}
		if len(data.Sales) > 0 {
			if err := tx.Create(&data.Sales).Error; err != nil {
				return err
			}
		}
		if len(data.PurchaseOrders) > 0 {
			if err := tx.Create(&data.PurchaseOrders).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import snapshot")
	}
	return nil
}

// Persist exports the collections and writes each one to the key-value store
// under its logical name.
func (s *Snapshot) Persist(ctx context.Context) error {
	if s.kv == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "kv store unavailable")
	}

	data, err := s.Export(ctx)
	if err != nil {
		return err
	}

	for key, value := range map[string]any{
		snapshotStores:         data.Stores,
		snapshotProducts:       data.Products,
		snapshotSales:          data.Sales,
		snapshotPurchaseOrders: data.PurchaseOrders,
	} {
		payload, err := json.Marshal(value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal snapshot collection")
		}
		if err := s.kv.Set(ctx, redis.SnapshotKey(key), string(payload), 0); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist snapshot collection")
		}
	}
	return nil
}

// Restore loads the persisted collections from the key-value store and imports
// them. Missing keys restore as empty collections.
func (s *Snapshot) Restore(ctx context.Context) error {
	if s.kv == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "kv store unavailable")
	}

	data := &SnapshotData{}
	for key, target := range map[string]any{
		snapshotStores:         &data.Stores,
		snapshotProducts:       &data.Products,
		snapshotSales:          &data.Sales,
		snapshotPurchaseOrders: &data.PurchaseOrders,
	} {
		raw, found, err := s.kv.Get(ctx, redis.SnapshotKey(key))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snapshot collection")
		}
		if !found {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unmarshal snapshot collection")
		}
	}

	return s.Import(ctx, data)
}
