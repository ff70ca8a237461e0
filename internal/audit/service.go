package audit

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/pagination"
)

// Service exposes audit-log semantics.
type Service interface {
	Record(ctx context.Context, entry Entry) error
	RecordTx(ctx context.Context, tx *gorm.DB, entry Entry) error
	List(ctx context.Context, entityType string, limit, offset int) ([]LogEntryDTO, error)
}

type repository interface {
	Create(ctx context.Context, row *models.LogEntry) error
	WithTx(tx *gorm.DB) *Repository
	List(ctx context.Context, entityType string, limit, offset int) ([]models.LogEntry, error)
}

type service struct {
	repo repository
}

// NewService constructs an audit service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository is required")
	}
	return &service{repo: repo}, nil
}

// Record appends an entry outside any caller transaction.
func (s *service) Record(ctx context.Context, entry Entry) error {
	if entry.Action == "" || entry.EntityType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "action and entity_type are required")
	}
	if err := s.repo.Create(ctx, entry.toModel()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append audit entry")
	}
	return nil
}

// RecordTx appends an entry inside the caller's transaction so the audit row
// commits or rolls back with the mutation it describes.
func (s *service) RecordTx(ctx context.Context, tx *gorm.DB, entry Entry) error {
	if entry.Action == "" || entry.EntityType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "action and entity_type are required")
	}
	if err := s.repo.WithTx(tx).Create(ctx, entry.toModel()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append audit entry")
	}
	return nil
}

// List reads back entries for the admin audit endpoint.
func (s *service) List(ctx context.Context, entityType string, limit, offset int) ([]LogEntryDTO, error) {
	rows, err := s.repo.List(ctx, entityType, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list audit entries")
	}
	out := make([]LogEntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
