package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/pagination"
)

// Service exposes supplier operations.
type Service interface {
	Create(ctx context.Context, req CreateSupplierRequest) (*SupplierDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*SupplierDTO, error)
	List(ctx context.Context, limit, offset int) ([]SupplierDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs a suppliers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("suppliers repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	row, err := s.repo.Create(ctx, &models.Supplier{
		Name:    name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create supplier")
	}
	return fromModel(row), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SupplierDTO, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModel(row), nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]SupplierDTO, error) {
	rows, err := s.repo.List(ctx, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list suppliers")
	}
	out := make([]SupplierDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	values := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name cannot be empty")
		}
		values["name"] = name
	}
	if req.Phone != nil {
		values["phone"] = req.Phone
	}
	if req.Email != nil {
		values["email"] = req.Email
	}
	if req.Address != nil {
		values["address"] = req.Address
	}
	if req.Notes != nil {
		values["notes"] = req.Notes
	}
	if err := s.repo.Update(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update supplier")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check supplier references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "supplier is referenced by fabrics or inventory items")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete supplier")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load supplier")
	}
	return row, nil
}
