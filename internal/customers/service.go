package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/pagination"
)

// Service exposes customer management semantics.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, limit, offset int) ([]CustomerDTO, error)
	Search(ctx context.Context, query string, limit int) ([]CustomerDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Merge(ctx context.Context, actorID *uuid.UUID, req MergeRequest) (*MergeResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	RecordTx(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService constructs a customers service with the provided dependencies.
func NewService(repo Repository, tx txRunner, auditSvc auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if auditSvc == nil {
		return nil, fmt.Errorf("audit recorder is required")
	}
	return &service{repo: repo, tx: tx, audit: auditSvc}, nil
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error) {
	row, err := s.repo.Create(ctx, req.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}
	return FromModel(row), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	return FromModel(row), nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]CustomerDTO, error) {
	rows, err := s.repo.List(ctx, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}
	return toDTOs(rows), nil
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]CustomerDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	rows, err := s.repo.Search(ctx, query, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search customers")
	}
	return toDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}

	values := req.toValues()
	if err := s.repo.Update(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete customer")
	}
	return nil
}

// Merge folds the source customers into the target. Every table referencing a
// source customer is repointed at the target, then the sources are deleted.
// The whole operation commits or rolls back as one transaction.
func (s *service) Merge(ctx context.Context, actorID *uuid.UUID, req MergeRequest) (*MergeResult, error) {
	if req.TargetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target_id is required")
	}
	sources := dedupe(req.SourceIDs)
	if len(sources) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source_ids are required")
	}
	for _, id := range sources {
		if id == req.TargetID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "target cannot be one of the sources")
		}
	}

	if _, err := s.repo.FindByID(ctx, req.TargetID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "target customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load target customer")
	}

	count, err := s.repo.CountByIDs(ctx, sources)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count source customers")
	}
	if count != int64(len(sources)) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "one or more source customers not found")
	}

	result := &MergeResult{TargetID: req.TargetID, MergedCustomers: len(sources)}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		repointed, err := repo.RepointReferences(ctx, req.TargetID, sources)
		if err != nil {
			return fmt.Errorf("repoint references: %w", err)
		}
		result.RepointedRows = repointed

		if err := repo.DeleteByIDs(ctx, sources); err != nil {
			return fmt.Errorf("delete source customers: %w", err)
		}

		detail := fmt.Sprintf("merged %d customers into %s (%d rows repointed)", len(sources), req.TargetID, repointed)
		targetID := req.TargetID
		return s.audit.RecordTx(ctx, tx, audit.Entry{
			ActorID:    actorID,
			Action:     "customer.merge",
			EntityType: "customer",
			EntityID:   &targetID,
			Detail:     &detail,
		})
	})
	if err != nil {
		return nil, asDomainError(err, "merge customers")
	}

	return result, nil
}

// asDomainError keeps typed errors raised inside a transaction intact and
// wraps everything else as internal.
func asDomainError(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func (req CreateCustomerRequest) toModel() *models.Customer {
	return &models.Customer{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    req.Email,
		Address:  req.Address,
		Notes:    req.Notes,
	}
}

func (req UpdateCustomerRequest) toValues() map[string]any {
	values := map[string]any{}
	if req.FullName != nil {
		values["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		values["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		values["email"] = *req.Email
	}
	if req.Address != nil {
		values["address"] = *req.Address
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	return values
}

func toDTOs(rows []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
