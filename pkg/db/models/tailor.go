package models

import (
	"time"

	"github.com/google/uuid"
)

// Tailor is a worker orders can be assigned to.
type Tailor struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName    string        `gorm:"column:full_name;not null"`
	Phone       *string       `gorm:"column:phone"`
	Specialty   *string       `gorm:"column:specialty"`
	Active      bool          `gorm:"column:active;not null;default:true"`
	Assignments []OrderTailor `gorm:"foreignKey:TailorID"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
