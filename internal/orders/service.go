package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/pagination"
)

// Service exposes order management semantics.
type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]OrderDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderDTO, error)
	Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error

	AddItem(ctx context.Context, orderID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	GetProduction(ctx context.Context, orderID uuid.UUID) (*ProductionDTO, error)
	UpdateProduction(ctx context.Context, actorID *uuid.UUID, orderID uuid.UUID, req UpdateProductionRequest) (*ProductionDTO, error)

	AssignTailor(ctx context.Context, orderID uuid.UUID, req AssignTailorRequest) (*AssignmentDTO, error)
	UpdateAssignment(ctx context.Context, orderID, assignmentID uuid.UUID, req UpdateAssignmentRequest) (*AssignmentDTO, error)
	Unassign(ctx context.Context, orderID, assignmentID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	RecordTx(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type customerDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type tailorDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tailor, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	audit     auditRecorder
	customers customerDirectory
	tailors   tailorDirectory
}

// NewService constructs an orders service with the provided dependencies.
func NewService(repo Repository, tx txRunner, auditSvc auditRecorder, customers customerDirectory, tailors tailorDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if auditSvc == nil {
		return nil, fmt.Errorf("audit recorder is required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer directory is required")
	}
	if tailors == nil {
		return nil, fmt.Errorf("tailor directory is required")
	}
	return &service{repo: repo, tx: tx, audit: auditSvc, customers: customers, tailors: tailors}, nil
}

func (s *service) Create(ctx context.Context, req CreateOrderRequest) (*OrderDTO, error) {
	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_number is required")
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}

	if _, err := s.repo.FindByOrderNumber(ctx, orderNumber); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order number already in use")
	} else if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check order number")
	}

	items := make([]models.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := itemReq.toModel(uuid.Nil)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	order := &models.Order{
		OrderNumber: orderNumber,
		CustomerID:  req.CustomerID,
		DueDate:     req.DueDate,
		TotalPrice:  req.TotalPrice,
		Notes:       req.Notes,
		Items:       items,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order number already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return s.Get(ctx, order.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx, customerID, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	values := map[string]any{}
	if req.DueDate != nil {
		values["due_date"] = *req.DueDate
	}
	if req.TotalPrice != nil {
		values["total_price"] = *req.TotalPrice
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if err := s.repo.Update(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}
	return s.Get(ctx, id)
}

// Delete removes the order and everything hanging off it. The audit row lands
// in the same transaction as the delete.
func (s *service) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		detail := fmt.Sprintf("deleted order %s", order.OrderNumber)
		orderID := id
		return s.audit.RecordTx(ctx, tx, audit.Entry{
			ActorID:    actorID,
			Action:     "order.delete",
			EntityType: "order",
			EntityID:   &orderID,
			Detail:     &detail,
		})
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, orderID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	item, err := req.toModel(orderID)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
	}
	return itemFromModel(created), nil
}

func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}

	values := map[string]any{}
	if req.FabricID != nil {
		values["fabric_id"] = *req.FabricID
	}
	if req.LiningFabricID != nil {
		values["lining_fabric_id"] = *req.LiningFabricID
	}
	if req.MeasurementID != nil {
		values["measurement_id"] = *req.MeasurementID
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		values["quantity"] = *req.Quantity
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if err := s.repo.UpdateItem(ctx, itemID, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item")
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload item")
	}
	return itemFromModel(item), nil
}

func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete item")
	}
	return nil
}

func (s *service) GetProduction(ctx context.Context, orderID uuid.UUID) (*ProductionDTO, error) {
	row, err := s.repo.FindProduction(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "production status not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load production status")
	}
	return productionFromModel(row), nil
}

// UpdateProduction moves the order's workshop stage. The row is created on the
// first transition and the change is audited in the same transaction.
func (s *service) UpdateProduction(ctx context.Context, actorID *uuid.UUID, orderID uuid.UUID, req UpdateProductionRequest) (*ProductionDTO, error) {
	stage, err := enums.ParseProductionStage(req.Stage)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	var updated *models.ProductionStatus
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.UpsertProduction(ctx, &models.ProductionStatus{
			OrderID: orderID,
			Stage:   stage,
			Notes:   req.Notes,
		})
		if err != nil {
			return fmt.Errorf("upsert production status: %w", err)
		}
		updated = row

		detail := fmt.Sprintf("order moved to %s", stage)
		entityID := orderID
		return s.audit.RecordTx(ctx, tx, audit.Entry{
			ActorID:    actorID,
			Action:     "order.status",
			EntityType: "order",
			EntityID:   &entityID,
			Detail:     &detail,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update production status")
	}
	return productionFromModel(updated), nil
}

func (s *service) AssignTailor(ctx context.Context, orderID uuid.UUID, req AssignTailorRequest) (*AssignmentDTO, error) {
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	tailor, err := s.tailors.FindByID(ctx, req.TailorID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tailor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tailor")
	}
	if !tailor.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tailor is not active")
	}

	row, err := s.repo.CreateAssignment(ctx, &models.OrderTailor{
		OrderID:  orderID,
		TailorID: req.TailorID,
		Status:   enums.AssignmentStatusAssigned,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_order_tailor") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tailor already assigned to this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create assignment")
	}
	return assignmentFromModel(row), nil
}

func (s *service) UpdateAssignment(ctx context.Context, orderID, assignmentID uuid.UUID, req UpdateAssignmentRequest) (*AssignmentDTO, error) {
	row, err := s.findOrderAssignment(ctx, orderID, assignmentID)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Status != nil {
		status, err := enums.ParseAssignmentStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		values["status"] = status
	}
	if req.DueDate != nil {
		values["due_date"] = *req.DueDate
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if err := s.repo.UpdateAssignment(ctx, row.ID, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update assignment")
	}

	updated, err := s.repo.FindAssignmentByID(ctx, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload assignment")
	}
	return assignmentFromModel(updated), nil
}

func (s *service) Unassign(ctx context.Context, orderID, assignmentID uuid.UUID) error {
	row, err := s.findOrderAssignment(ctx, orderID, assignmentID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAssignment(ctx, row.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete assignment")
	}
	return nil
}

func (s *service) findOrderAssignment(ctx context.Context, orderID, assignmentID uuid.UUID) (*models.OrderTailor, error) {
	row, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load assignment")
	}
	if row.OrderID != orderID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
	}
	return row, nil
}

func (req CreateItemRequest) toModel(orderID uuid.UUID) (*models.Item, error) {
	garment, err := enums.ParseGarmentType(req.GarmentType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if req.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return &models.Item{
		OrderID:        orderID,
		GarmentType:    garment,
		FabricID:       req.FabricID,
		LiningFabricID: req.LiningFabricID,
		MeasurementID:  req.MeasurementID,
		Quantity:       req.Quantity,
		Notes:          req.Notes,
	}, nil
}
