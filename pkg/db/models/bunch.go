package models

import (
	"time"

	"github.com/google/uuid"
)

// Bunch is a named group of inventory items stored together on a rack.
type Bunch struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RackID    uuid.UUID       `gorm:"column:rack_id;type:uuid;not null;index"`
	Name      string          `gorm:"column:name;not null"`
	Items     []InventoryItem `gorm:"foreignKey:BunchID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
