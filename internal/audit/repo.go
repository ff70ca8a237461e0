package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Repository exposes append and read operations on the audit log.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create appends a log entry.
func (r *Repository) Create(ctx context.Context, row *models.LogEntry) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// List returns log entries, newest first, optionally filtered by entity type.
func (r *Repository) List(ctx context.Context, entityType string, limit, offset int) ([]models.LogEntry, error) {
	q := r.db.WithContext(ctx).Model(&models.LogEntry{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	var rows []models.LogEntry
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}
