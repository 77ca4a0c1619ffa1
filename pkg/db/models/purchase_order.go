package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/enums"
)

// PurchaseOrder tracks replenishment requests sent to a supplier.
type PurchaseOrder struct {
	ID        uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID                 `gorm:"column:store_id;type:uuid;not null;index" json:"store_id"`
	Supplier  string                    `gorm:"column:supplier;not null" json:"supplier"`
	Status    enums.PurchaseOrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	OrderedAt time.Time                 `gorm:"column:ordered_at;not null" json:"ordered_at"`
	Total     decimal.Decimal           `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items     []PurchaseOrderItem       `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the primary key.
func (p *PurchaseOrder) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PurchaseOrderItem is one requested line on a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"column:purchase_order_id;type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Name            string          `gorm:"column:name;not null" json:"name"`
	Quantity        int             `gorm:"column:quantity;not null" json:"quantity"`
	CostPrice       decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null" json:"cost_price"`
	Position        int             `gorm:"column:position;not null;default:0" json:"position"`
}

// BeforeCreate assigns the primary key.
func (i *PurchaseOrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
