package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Entry is one audit event to be recorded.
type Entry struct {
	ActorID    *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Detail     *string
}

// LogEntryDTO is the public shape of an audit record.
type LogEntryDTO struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Detail     *string    `json:"detail,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FromModel maps a log row to its DTO.
func FromModel(row *models.LogEntry) *LogEntryDTO {
	if row == nil {
		return nil
	}
	return &LogEntryDTO{
		ID:         row.ID,
		ActorID:    row.ActorID,
		Action:     row.Action,
		EntityType: row.EntityType,
		EntityID:   row.EntityID,
		Detail:     row.Detail,
		CreatedAt:  row.CreatedAt,
	}
}

func (e Entry) toModel() *models.LogEntry {
	return &models.LogEntry{
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Detail:     e.Detail,
	}
}
