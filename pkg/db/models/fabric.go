package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// Fabric is a bolt of cloth in stock. ImageKey is the GCS object key; the
// image is only served once ImageStatus reaches ready.
type Fabric struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string            `gorm:"column:name;not null"`
	Code            string            `gorm:"column:code;not null;uniqueIndex"`
	Color           *string           `gorm:"column:color"`
	Composition     *string           `gorm:"column:composition"`
	AvailableLength decimal.Decimal   `gorm:"column:available_length;type:numeric(8,2);not null;default:0"`
	PricePerMeter   *decimal.Decimal  `gorm:"column:price_per_meter;type:numeric(10,2)"`
	SupplierID      *uuid.UUID        `gorm:"column:supplier_id;type:uuid"`
	ImageKey        *string           `gorm:"column:image_key"`
	ImageStatus     enums.ImageStatus `gorm:"column:image_status;not null;default:pending"`
	Notes           *string           `gorm:"column:notes"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
