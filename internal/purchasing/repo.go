package purchasing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
	"github.com/dukahub/dukapos-backend/pkg/enums"
)

// Repository provides persistence for purchase orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the purchase order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads a purchase order with its items in order, scoped to the
// owning store.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&order, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByStore returns the store's purchase orders, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Where("store_id = ?", storeID).
		Order("ordered_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes only the status column of the store's matching order.
func (r *Repository) UpdateStatus(ctx context.Context, storeID, id uuid.UUID, status enums.PurchaseOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Update("status", status).Error
}
