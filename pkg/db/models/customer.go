package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the identity all orders and measurements hang off. A customer
// row must survive until a merge or explicit deletion repoints its references.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName  string    `gorm:"column:full_name;not null"`
	Phone     string    `gorm:"column:phone;not null"`
	Email     *string   `gorm:"column:email"`
	Address   *string   `gorm:"column:address"`
	Notes     *string   `gorm:"column:notes"`
	Orders    []Order   `gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
