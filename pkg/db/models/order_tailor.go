package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// OrderTailor links an order to the tailor working it. An order may carry
// several assignments over its life but only one per tailor.
type OrderTailor struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID              `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_order_tailor"`
	TailorID  uuid.UUID              `gorm:"column:tailor_id;type:uuid;not null;uniqueIndex:idx_order_tailor"`
	Status    enums.AssignmentStatus `gorm:"column:status;not null;default:assigned"`
	DueDate   *time.Time             `gorm:"column:due_date"`
	Notes     *string                `gorm:"column:notes"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
