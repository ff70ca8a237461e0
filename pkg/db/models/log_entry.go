package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is one audit record. Rows are append-only.
type LogEntry struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ActorID    *uuid.UUID `gorm:"column:actor_id;type:uuid;index"`
	Action     string     `gorm:"column:action;not null"`
	EntityType string     `gorm:"column:entity_type;not null;index"`
	EntityID   *uuid.UUID `gorm:"column:entity_id;type:uuid;index"`
	Detail     *string    `gorm:"column:detail"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
