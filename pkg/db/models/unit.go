package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a measurement unit for inventory quantities (meter, piece, roll).
type Unit struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Symbol    string    `gorm:"column:symbol;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
