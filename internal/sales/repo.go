package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
)

// Repository provides persistence for completed sales.
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

// Create inserts the sale together with its snapshot items.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID loads a sale with its items in receipt order, scoped to the owning
// store.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&sale, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListByStore returns the store's sales history, most recent first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Where("store_id = ?", storeID).
		Order("occurred_at desc").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// ListBetween returns the store's sales inside [from, to), most recent first.
func (r *Repository) ListBetween(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND occurred_at >= ? AND occurred_at < ?", storeID, from, to).
		Order("occurred_at desc").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
