package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is an immutable record of a completed checkout.
type Sale struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StoreID    uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index" json:"store_id"`
	OccurredAt time.Time       `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
	Cashier    string          `gorm:"column:cashier;not null" json:"cashier"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items      []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// BeforeCreate assigns the primary key.
func (s *Sale) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem snapshots a cart line at sale time. The copied name and unit price
// stay stable even when the product is later edited or deleted.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SaleID    uuid.UUID       `gorm:"column:sale_id;type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Position  int             `gorm:"column:position;not null;default:0" json:"position"`
}

// BeforeCreate assigns the primary key.
func (i *SaleItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
