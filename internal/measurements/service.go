package measurements

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
)

// Service exposes measurement recording semantics.
type Service interface {
	Get(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, orderID *uuid.UUID) (*MeasurementDTO, error)
	Create(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, req UpsertMeasurementRequest) (*MeasurementDTO, error)
	Update(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, req UpsertMeasurementRequest) (*MeasurementDTO, error)
}

type customerDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type orderDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo      Repository
	customers customerDirectory
	orders    orderDirectory
}

// NewService constructs a measurements service with the provided dependencies.
func NewService(repo Repository, customers customerDirectory, orders orderDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("measurements repository is required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer directory is required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order directory is required")
	}
	return &service{repo: repo, customers: customers, orders: orders}, nil
}

// Get returns the measurement for the given order, or the customer's most
// recent one when no order is named.
func (s *service) Get(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, orderID *uuid.UUID) (*MeasurementDTO, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid measurement kind")
	}
	if err := s.checkCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	var (
		rec *Record
		err error
	)
	if orderID != nil {
		rec, err = s.repo.FindByOrder(ctx, kind, customerID, *orderID)
	} else {
		rec, err = s.repo.FindLatest(ctx, kind, customerID)
	}
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "measurement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load measurement")
	}
	return rec.toDTO(kind), nil
}

// Create records a new measurement for the customer and order. One record per
// customer, order and kind.
func (s *service) Create(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, req UpsertMeasurementRequest) (*MeasurementDTO, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid measurement kind")
	}
	if err := s.checkCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := s.checkOrder(ctx, customerID, req.OrderID); err != nil {
		return nil, err
	}
	if err := validateDimensions(req.Dimensions, kind, true); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByOrder(ctx, kind, customerID, req.OrderID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "measurement already recorded for this order")
	} else if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing measurement")
	}

	rec, err := s.repo.Create(ctx, kind, &Record{
		CustomerID: customerID,
		OrderID:    req.OrderID,
		Dimensions: req.Dimensions,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create measurement")
	}
	return rec.toDTO(kind), nil
}

// Update adjusts an existing measurement. A subset of dimensions is allowed.
func (s *service) Update(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, req UpsertMeasurementRequest) (*MeasurementDTO, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid measurement kind")
	}
	if err := s.checkCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := validateDimensions(req.Dimensions, kind, false); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByOrder(ctx, kind, customerID, req.OrderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "measurement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load measurement")
	}

	values := make(map[string]any, len(req.Dimensions)+1)
	for name, value := range req.Dimensions {
		values[name] = value
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if err := s.repo.Update(ctx, kind, existing.ID, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update measurement")
	}

	rec, err := s.repo.FindByOrder(ctx, kind, customerID, req.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload measurement")
	}
	return rec.toDTO(kind), nil
}

func (s *service) checkCustomer(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	return nil
}

func (s *service) checkOrder(ctx context.Context, customerID, orderID uuid.UUID) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if order.CustomerID != customerID {
		return pkgerrors.New(pkgerrors.CodeValidation, "order belongs to another customer")
	}
	return nil
}

// validateDimensions checks names and values. When complete is set the full
// garment dimension set must be present.
func validateDimensions(dims map[string]decimal.Decimal, kind enums.MeasurementKind, complete bool) error {
	garment := garmentFor(kind)
	allowed := make(map[string]struct{}, len(dimensionFields[garment]))
	for _, field := range dimensionFields[garment] {
		allowed[field] = struct{}{}
	}
	for name, value := range dims {
		if _, ok := allowed[name]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown dimension %q for %s", name, garment))
		}
		if !value.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("dimension %q must be positive", name))
		}
	}
	if complete {
		for _, field := range dimensionFields[garment] {
			if _, ok := dims[field]; !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("missing dimension %q", field))
			}
		}
	}
	return nil
}
