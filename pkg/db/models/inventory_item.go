package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a quantity of material sitting in a bunch. Quantity is the
// number of capacity units the item occupies on its rack.
type InventoryItem struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BunchID      uuid.UUID  `gorm:"column:bunch_id;type:uuid;not null;index"`
	Name         string     `gorm:"column:name;not null"`
	MaterialType *string    `gorm:"column:material_type"`
	Quantity     int        `gorm:"column:quantity;not null"`
	UnitID       *uuid.UUID `gorm:"column:unit_id;type:uuid"`
	SupplierID   *uuid.UUID `gorm:"column:supplier_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
