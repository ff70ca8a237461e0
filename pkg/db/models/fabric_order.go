package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// FabricOrder is a restock request placed with a supplier.
type FabricOrder struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FabricID   uuid.UUID              `gorm:"column:fabric_id;type:uuid;not null;index"`
	SupplierID uuid.UUID              `gorm:"column:supplier_id;type:uuid;not null;index"`
	Length     decimal.Decimal        `gorm:"column:length;type:numeric(8,2);not null"`
	Status     enums.FabricOrderStatus `gorm:"column:status;not null;default:requested"`
	ExpectedAt *time.Time             `gorm:"column:expected_at"`
	ReceivedAt *time.Time             `gorm:"column:received_at"`
	Notes      *string                `gorm:"column:notes"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
