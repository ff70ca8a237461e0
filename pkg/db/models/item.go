package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// Item is one garment inside an order. MeasurementID points into the
// measurement table matching GarmentType, so it carries no FK constraint here.
type Item struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID         `gorm:"column:order_id;type:uuid;not null"`
	GarmentType    enums.GarmentType `gorm:"column:garment_type;not null"`
	FabricID       *uuid.UUID        `gorm:"column:fabric_id;type:uuid"`
	LiningFabricID *uuid.UUID        `gorm:"column:lining_fabric_id;type:uuid"`
	MeasurementID  *uuid.UUID        `gorm:"column:measurement_id;type:uuid"`
	Quantity       int               `gorm:"column:quantity;not null;default:1"`
	Notes          *string           `gorm:"column:notes"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
