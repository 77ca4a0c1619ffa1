package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/enums"
)

// Store represents one retail tenant. All products, sales and purchase orders
// are scoped to exactly one store.
type Store struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string                 `gorm:"column:name;not null" json:"name"`
	Location     string                 `gorm:"column:location;not null" json:"location"`
	Subscription enums.SubscriptionPlan `gorm:"column:subscription;not null;default:'basic'" json:"subscription"`
	ExpiresAt    time.Time              `gorm:"column:expires_at;not null" json:"expires_at"`
	Status       enums.StoreStatus      `gorm:"column:status;not null;default:'active'" json:"status"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the primary key.
func (s *Store) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
