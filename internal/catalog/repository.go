package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
)

// Repository provides persistence for catalog products.
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

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Save persists all mutable fields of an existing product.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product owned by the store and reports how many rows
// matched. A product belonging to another store matches zero rows.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ? AND store_id = ?", id, storeID)
	return res.RowsAffected, res.Error
}

// FindByID loads a product by primary key, scoped to the owning store so one
// store can never address another store's catalog by id.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByStore returns a store's products ordered by name.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("store_id = ?", storeID).Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll returns every product across stores, used by snapshot export.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListLowStock returns products at or below their minimum stock level.
func (r *Repository) ListLowStock(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND stock <= min_stock", storeID).
		Order("name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DecrementStock subtracts qty from the product's stock only when enough is
// available. It reports false when the product is missing in the store or the
// decrement would drive stock negative; nothing is changed in that case.
func (r *Repository) DecrementStock(ctx context.Context, storeID, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND store_id = ? AND stock >= ?", id, storeID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AdjustStockClamped applies a signed delta to the product's stock, clamping
// the result at zero. It reports false when the store owns no such product.
func (r *Repository) AdjustStockClamped(ctx context.Context, storeID, id uuid.UUID, delta int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Update("stock", gorm.Expr("CASE WHEN stock + ? < 0 THEN 0 ELSE stock + ? END", delta, delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
