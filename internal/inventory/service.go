package inventory

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

// Service exposes the storage-hierarchy semantics. Every operation that moves
// item quantities keeps the owning rack's utilization counter in step inside
// the same transaction.
type Service interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationDTO, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*LocationDTO, error)
	ListLocations(ctx context.Context, limit, offset int) ([]LocationDTO, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationDTO, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	CreateRack(ctx context.Context, req CreateRackRequest) (*RackDTO, error)
	GetRack(ctx context.Context, id uuid.UUID) (*RackDTO, error)
	ListRacks(ctx context.Context, locationID *uuid.UUID, limit, offset int) ([]RackDTO, error)
	UpdateRack(ctx context.Context, id uuid.UUID, req UpdateRackRequest) (*RackDTO, error)
	DeleteRack(ctx context.Context, id uuid.UUID) error

	CreateBunch(ctx context.Context, rackID uuid.UUID, req CreateBunchRequest) (*BunchDTO, error)
	GetBunch(ctx context.Context, id uuid.UUID) (*BunchDTO, error)
	ListBunches(ctx context.Context, rackID uuid.UUID) ([]BunchDTO, error)

	AddBunchItems(ctx context.Context, bunchID uuid.UUID, req AddBunchItemsRequest) (*BunchDTO, error)
	UpdateBunchItems(ctx context.Context, bunchID uuid.UUID, req UpdateBunchItemsRequest) (*BunchDTO, error)
	DeleteBunchItems(ctx context.Context, bunchID uuid.UUID, req DeleteBunchItemsRequest) (*BunchDTO, error)
	MoveBunch(ctx context.Context, bunchID uuid.UUID, req MoveBunchRequest) (*BunchDTO, error)
	DeleteBunch(ctx context.Context, actorID *uuid.UUID, bunchID uuid.UUID) error

	CreateUnit(ctx context.Context, req CreateUnitRequest) (*UnitDTO, error)
	ListUnits(ctx context.Context) ([]UnitDTO, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error
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

// NewService constructs an inventory service with the provided dependencies.
func NewService(repo Repository, tx txRunner, auditSvc auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if auditSvc == nil {
		return nil, fmt.Errorf("audit recorder is required")
	}
	return &service{repo: repo, tx: tx, audit: auditSvc}, nil
}

// capacityError builds the 422 with the numbers the caller needs to see what
// would not fit.
func capacityError(capacity, current, required int) error {
	return pkgerrors.New(pkgerrors.CodeCapacityExceeded, "rack capacity exceeded").
		WithDetails(map[string]int{
			"capacity":            capacity,
			"current_utilization": current,
			"required":            required,
		})
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationDTO, error) {
	row, err := s.repo.CreateLocation(ctx, &models.Location{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "location name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create location")
	}
	return locationFromModel(row), nil
}

func (s *service) GetLocation(ctx context.Context, id uuid.UUID) (*LocationDTO, error) {
	row, err := s.loadLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return locationFromModel(row), nil
}

func (s *service) ListLocations(ctx context.Context, limit, offset int) ([]LocationDTO, error) {
	rows, err := s.repo.ListLocations(ctx, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list locations")
	}
	out := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *locationFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationDTO, error) {
	if _, err := s.loadLocation(ctx, id); err != nil {
		return nil, err
	}
	values := map[string]any{}
	if req.Name != nil {
		values["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		values["address"] = *req.Address
	}
	if err := s.repo.UpdateLocation(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update location")
	}
	return s.GetLocation(ctx, id)
}

func (s *service) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadLocation(ctx, id); err != nil {
		return err
	}
	racks, err := s.repo.CountRacks(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count racks")
	}
	if racks > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "location still has racks")
	}
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete location")
	}
	return nil
}

func (s *service) CreateRack(ctx context.Context, req CreateRackRequest) (*RackDTO, error) {
	if req.Capacity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be positive")
	}
	if _, err := s.loadLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}
	row, err := s.repo.CreateRack(ctx, &models.Rack{
		LocationID: req.LocationID,
		Name:       strings.TrimSpace(req.Name),
		Capacity:   req.Capacity,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rack")
	}
	return rackFromModel(row), nil
}

func (s *service) GetRack(ctx context.Context, id uuid.UUID) (*RackDTO, error) {
	row, err := s.loadRack(ctx, id)
	if err != nil {
		return nil, err
	}
	return rackFromModel(row), nil
}

func (s *service) ListRacks(ctx context.Context, locationID *uuid.UUID, limit, offset int) ([]RackDTO, error) {
	rows, err := s.repo.ListRacks(ctx, locationID, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list racks")
	}
	out := make([]RackDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *rackFromModel(&rows[i]))
	}
	return out, nil
}

// UpdateRack edits a rack. Shrinking capacity below what is already stored on
// the rack is rejected with the capacity error.
func (s *service) UpdateRack(ctx context.Context, id uuid.UUID, req UpdateRackRequest) (*RackDTO, error) {
	rack, err := s.loadRack(ctx, id)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Name != nil {
		values["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be positive")
		}
		if *req.Capacity < rack.CurrentUtilization {
			return nil, capacityError(*req.Capacity, rack.CurrentUtilization, 0)
		}
		values["capacity"] = *req.Capacity
	}
	if err := s.repo.UpdateRack(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update rack")
	}
	return s.GetRack(ctx, id)
}

func (s *service) DeleteRack(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadRack(ctx, id); err != nil {
		return err
	}
	bunches, err := s.repo.CountBunches(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count bunches")
	}
	if bunches > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "rack still has bunches")
	}
	if err := s.repo.DeleteRack(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete rack")
	}
	return nil
}

func (s *service) CreateBunch(ctx context.Context, rackID uuid.UUID, req CreateBunchRequest) (*BunchDTO, error) {
	if _, err := s.loadRack(ctx, rackID); err != nil {
		return nil, err
	}
	row, err := s.repo.CreateBunch(ctx, &models.Bunch{
		RackID: rackID,
		Name:   strings.TrimSpace(req.Name),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bunch")
	}
	return bunchFromModel(row), nil
}

func (s *service) GetBunch(ctx context.Context, id uuid.UUID) (*BunchDTO, error) {
	row, err := s.loadBunch(ctx, id)
	if err != nil {
		return nil, err
	}
	return bunchFromModel(row), nil
}

func (s *service) ListBunches(ctx context.Context, rackID uuid.UUID) ([]BunchDTO, error) {
	if _, err := s.loadRack(ctx, rackID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBunches(ctx, rackID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bunches")
	}
	out := make([]BunchDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *bunchFromModel(&rows[i]))
	}
	return out, nil
}

// AddBunchItems creates the rows and sets the rack's utilization to the new
// rack-wide total, all inside one transaction. The capacity check runs against
// the rack total before anything is written.
func (s *service) AddBunchItems(ctx context.Context, bunchID uuid.UUID, req AddBunchItemsRequest) (*BunchDTO, error) {
	bunch, err := s.loadBunch(ctx, bunchID)
	if err != nil {
		return nil, err
	}
	rack, err := s.loadRack(ctx, bunch.RackID)
	if err != nil {
		return nil, err
	}

	required := 0
	rows := make([]models.InventoryItem, 0, len(req.Items))
	for _, input := range req.Items {
		if input.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		required += input.Quantity
		rows = append(rows, models.InventoryItem{
			BunchID:      bunchID,
			Name:         strings.TrimSpace(input.Name),
			MaterialType: input.MaterialType,
			Quantity:     input.Quantity,
			UnitID:       input.UnitID,
			SupplierID:   input.SupplierID,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.RackQuantityTotal(ctx, rack.ID)
		if err != nil {
			return fmt.Errorf("sum rack quantities: %w", err)
		}
		if current+required > rack.Capacity {
			return capacityError(rack.Capacity, current, required)
		}
		if err := repo.CreateItems(ctx, rows); err != nil {
			return fmt.Errorf("create items: %w", err)
		}
		if err := repo.SetRackUtilization(ctx, rack.ID, current+required); err != nil {
			return fmt.Errorf("set rack utilization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "add bunch items")
	}
	return s.GetBunch(ctx, bunchID)
}

// UpdateBunchItems edits items in place, then recomputes the rack utilization
// from the rows rather than trusting a delta.
func (s *service) UpdateBunchItems(ctx context.Context, bunchID uuid.UUID, req UpdateBunchItemsRequest) (*BunchDTO, error) {
	bunch, err := s.loadBunch(ctx, bunchID)
	if err != nil {
		return nil, err
	}
	rack, err := s.loadRack(ctx, bunch.RackID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for _, input := range req.Items {
			if _, err := repo.FindItemInBunch(ctx, bunchID, input.ID); err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not in bunch", input.ID))
				}
				return fmt.Errorf("load item: %w", err)
			}
			values := map[string]any{}
			if input.Name != nil {
				values["name"] = strings.TrimSpace(*input.Name)
			}
			if input.MaterialType != nil {
				values["material_type"] = *input.MaterialType
			}
			if input.Quantity != nil {
				if *input.Quantity <= 0 {
					return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
				}
				values["quantity"] = *input.Quantity
			}
			if input.UnitID != nil {
				values["unit_id"] = *input.UnitID
			}
			if input.SupplierID != nil {
				values["supplier_id"] = *input.SupplierID
			}
			if err := repo.UpdateItem(ctx, input.ID, values); err != nil {
				return fmt.Errorf("update item: %w", err)
			}
		}

		total, err := repo.RackQuantityTotal(ctx, rack.ID)
		if err != nil {
			return fmt.Errorf("sum rack quantities: %w", err)
		}
		if total > rack.Capacity {
			return capacityError(rack.Capacity, total, 0)
		}
		if err := repo.SetRackUtilization(ctx, rack.ID, total); err != nil {
			return fmt.Errorf("set rack utilization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "update bunch items")
	}
	return s.GetBunch(ctx, bunchID)
}

// DeleteBunchItems removes the named items, scoped to the bunch, and
// recomputes the rack utilization from the remaining rows.
func (s *service) DeleteBunchItems(ctx context.Context, bunchID uuid.UUID, req DeleteBunchItemsRequest) (*BunchDTO, error) {
	bunch, err := s.loadBunch(ctx, bunchID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.DeleteItemsInBunch(ctx, bunchID, req.ItemIDs); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		total, err := repo.RackQuantityTotal(ctx, bunch.RackID)
		if err != nil {
			return fmt.Errorf("sum rack quantities: %w", err)
		}
		if err := repo.SetRackUtilization(ctx, bunch.RackID, total); err != nil {
			return fmt.Errorf("set rack utilization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "delete bunch items")
	}
	return s.GetBunch(ctx, bunchID)
}

// MoveBunch repoints the bunch at another rack and moves its total quantity
// between the two utilization counters, all-or-nothing.
func (s *service) MoveBunch(ctx context.Context, bunchID uuid.UUID, req MoveBunchRequest) (*BunchDTO, error) {
	bunch, err := s.loadBunch(ctx, bunchID)
	if err != nil {
		return nil, err
	}
	if bunch.RackID == req.NewRackID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bunch is already on this rack")
	}
	dest, err := s.loadRack(ctx, req.NewRackID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		moving, err := repo.BunchQuantityTotal(ctx, bunchID)
		if err != nil {
			return fmt.Errorf("sum bunch quantities: %w", err)
		}
		destTotal, err := repo.RackQuantityTotal(ctx, dest.ID)
		if err != nil {
			return fmt.Errorf("sum destination quantities: %w", err)
		}
		if destTotal+moving > dest.Capacity {
			return capacityError(dest.Capacity, destTotal, moving)
		}

		if err := repo.AdjustRackUtilization(ctx, bunch.RackID, -moving); err != nil {
			return fmt.Errorf("decrement source rack: %w", err)
		}
		if err := repo.AdjustRackUtilization(ctx, dest.ID, moving); err != nil {
			return fmt.Errorf("increment destination rack: %w", err)
		}
		if err := repo.SetBunchRack(ctx, bunchID, dest.ID); err != nil {
			return fmt.Errorf("repoint bunch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "move bunch")
	}
	return s.GetBunch(ctx, bunchID)
}

// DeleteBunch cascades to the items, decrements the owning rack by the bunch
// total and writes the audit row, all in one transaction.
func (s *service) DeleteBunch(ctx context.Context, actorID *uuid.UUID, bunchID uuid.UUID) error {
	bunch, err := s.loadBunch(ctx, bunchID)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		total, err := repo.BunchQuantityTotal(ctx, bunchID)
		if err != nil {
			return fmt.Errorf("sum bunch quantities: %w", err)
		}
		if err := repo.DeleteBunch(ctx, bunchID); err != nil {
			return fmt.Errorf("delete bunch: %w", err)
		}
		if err := repo.AdjustRackUtilization(ctx, bunch.RackID, -total); err != nil {
			return fmt.Errorf("decrement rack utilization: %w", err)
		}

		detail := fmt.Sprintf("deleted bunch %q (%d units) from rack %s", bunch.Name, total, bunch.RackID)
		entityID := bunchID
		return s.audit.RecordTx(ctx, tx, audit.Entry{
			ActorID:    actorID,
			Action:     "bunch.delete",
			EntityType: "bunch",
			EntityID:   &entityID,
			Detail:     &detail,
		})
	})
	if err != nil {
		return asDomainError(err, "delete bunch")
	}
	return nil
}

func (s *service) CreateUnit(ctx context.Context, req CreateUnitRequest) (*UnitDTO, error) {
	row, err := s.repo.CreateUnit(ctx, &models.Unit{
		Name:   strings.TrimSpace(req.Name),
		Symbol: strings.TrimSpace(req.Symbol),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "unit name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create unit")
	}
	return unitFromModel(row), nil
}

func (s *service) ListUnits(ctx context.Context) ([]UnitDTO, error) {
	rows, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list units")
	}
	out := make([]UnitDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *unitFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindUnitByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "unit not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load unit")
	}
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete unit")
	}
	return nil
}

func (s *service) loadLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	row, err := s.repo.FindLocationByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location")
	}
	return row, nil
}

func (s *service) loadRack(ctx context.Context, id uuid.UUID) (*models.Rack, error) {
	row, err := s.repo.FindRackByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rack not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rack")
	}
	return row, nil
}

func (s *service) loadBunch(ctx context.Context, id uuid.UUID) (*models.Bunch, error) {
	row, err := s.repo.FindBunchByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bunch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bunch")
	}
	return row, nil
}

// asDomainError keeps typed errors raised inside a transaction intact and
// wraps everything else as internal.
func asDomainError(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
