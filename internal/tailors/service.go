package tailors

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

// Service exposes tailor operations.
type Service interface {
	Create(ctx context.Context, req CreateTailorRequest) (*TailorDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*TailorDTO, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]TailorDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTailorRequest) (*TailorDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs a tailors service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tailors repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateTailorRequest) (*TailorDTO, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tailor name is required")
	}
	row, err := s.repo.Create(ctx, &models.Tailor{
		FullName:  name,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Active:    true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create tailor")
	}
	return fromModel(row), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TailorDTO, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModel(row), nil
}

func (s *service) List(ctx context.Context, activeOnly bool, limit, offset int) ([]TailorDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list tailors")
	}
	out := make([]TailorDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateTailorRequest) (*TailorDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	values := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tailor name cannot be empty")
		}
		values["full_name"] = name
	}
	if req.Phone != nil {
		values["phone"] = req.Phone
	}
	if req.Specialty != nil {
		values["specialty"] = req.Specialty
	}
	if req.Active != nil {
		values["active"] = *req.Active
	}
	if err := s.repo.Update(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update tailor")
	}
	return s.Get(ctx, id)
}

// Delete removes a tailor with no assignment history. Tailors that have been
// assigned to orders are deactivated through Update instead.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountAssignments(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check tailor assignments")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "tailor has order assignments")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete tailor")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Tailor, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tailor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load tailor")
	}
	return row, nil
}
