package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item scoped to a single store.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID       `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_products_store_barcode" json:"store_id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Category  string          `gorm:"column:category;not null" json:"category"`
	Barcode   string          `gorm:"column:barcode;not null;uniqueIndex:idx_products_store_barcode" json:"barcode"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	CostPrice decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null" json:"cost_price"`
	Stock     int             `gorm:"column:stock;not null;default:0" json:"stock"`
	MinStock  int             `gorm:"column:min_stock;not null;default:0" json:"min_stock"`
	Supplier  string          `gorm:"column:supplier;not null" json:"supplier"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the primary key so id generation does not depend on a
// database default.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
