package models

import (
	"time"

	"github.com/google/uuid"
)

// Rack is a shelving unit inside a location. CurrentUtilization is the sum of
// the quantities of every inventory item stored on it and must never exceed
// Capacity. It is only ever updated inside the same transaction that changes
// the items it accounts for.
type Rack struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LocationID         uuid.UUID `gorm:"column:location_id;type:uuid;not null;index"`
	Name               string    `gorm:"column:name;not null"`
	Capacity           int       `gorm:"column:capacity;not null"`
	CurrentUtilization int       `gorm:"column:current_utilization;not null;default:0"`
	Bunches            []Bunch   `gorm:"foreignKey:RackID"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
