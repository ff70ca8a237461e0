package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The six measurement tables share a customer+order scope. Dimensions are
// stored in centimeters with two decimals. The "final" tables carry the
// post-fitting adjusted values and mirror their base table's columns.

// JacketMeasurement holds the initial jacket dimensions for a customer/order.
type JacketMeasurement struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;index"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	Length     decimal.Decimal `gorm:"column:length;type:numeric(6,2);not null"`
	Shoulder   decimal.Decimal `gorm:"column:shoulder;type:numeric(6,2);not null"`
	Sleeve     decimal.Decimal `gorm:"column:sleeve;type:numeric(6,2);not null"`
	Chest      decimal.Decimal `gorm:"column:chest;type:numeric(6,2);not null"`
	Waist      decimal.Decimal `gorm:"column:waist;type:numeric(6,2);not null"`
	Hip        decimal.Decimal `gorm:"column:hip;type:numeric(6,2);not null"`
	Neck       decimal.Decimal `gorm:"column:neck;type:numeric(6,2);not null"`
	Notes      *string         `gorm:"column:notes"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// FinalJacketMeasurement is the post-fitting counterpart of JacketMeasurement.
type FinalJacketMeasurement struct {
	JacketMeasurement
}

func (FinalJacketMeasurement) TableName() string { return "final_jacket_measurements" }

// ShirtMeasurement holds the initial shirt dimensions for a customer/order.
type ShirtMeasurement struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;index"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	Length     decimal.Decimal `gorm:"column:length;type:numeric(6,2);not null"`
	Shoulder   decimal.Decimal `gorm:"column:shoulder;type:numeric(6,2);not null"`
	Sleeve     decimal.Decimal `gorm:"column:sleeve;type:numeric(6,2);not null"`
	Chest      decimal.Decimal `gorm:"column:chest;type:numeric(6,2);not null"`
	Waist      decimal.Decimal `gorm:"column:waist;type:numeric(6,2);not null"`
	Collar     decimal.Decimal `gorm:"column:collar;type:numeric(6,2);not null"`
	Cuff       decimal.Decimal `gorm:"column:cuff;type:numeric(6,2);not null"`
	Notes      *string         `gorm:"column:notes"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// FinalShirtMeasurement is the post-fitting counterpart of ShirtMeasurement.
type FinalShirtMeasurement struct {
	ShirtMeasurement
}

func (FinalShirtMeasurement) TableName() string { return "final_shirt_measurements" }

// PantMeasurement holds the initial pant dimensions for a customer/order.
type PantMeasurement struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;index"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	Length     decimal.Decimal `gorm:"column:length;type:numeric(6,2);not null"`
	Waist      decimal.Decimal `gorm:"column:waist;type:numeric(6,2);not null"`
	Hip        decimal.Decimal `gorm:"column:hip;type:numeric(6,2);not null"`
	Thigh      decimal.Decimal `gorm:"column:thigh;type:numeric(6,2);not null"`
	Knee       decimal.Decimal `gorm:"column:knee;type:numeric(6,2);not null"`
	Bottom     decimal.Decimal `gorm:"column:bottom;type:numeric(6,2);not null"`
	Inseam     decimal.Decimal `gorm:"column:inseam;type:numeric(6,2);not null"`
	Notes      *string         `gorm:"column:notes"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// FinalPantMeasurement is the post-fitting counterpart of PantMeasurement.
type FinalPantMeasurement struct {
	PantMeasurement
}

func (FinalPantMeasurement) TableName() string { return "final_pant_measurements" }
