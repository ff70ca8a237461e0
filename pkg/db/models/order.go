package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order groups the garments a customer commissioned in one visit.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string            `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	DueDate     *time.Time        `gorm:"column:due_date"`
	TotalPrice  *decimal.Decimal  `gorm:"column:total_price;type:numeric(10,2)"`
	Notes       *string           `gorm:"column:notes"`
	Items       []Item            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Production  *ProductionStatus `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Assignments []OrderTailor     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
