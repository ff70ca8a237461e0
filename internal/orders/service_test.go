package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
)

type stubOrderRepo struct {
	orders      map[uuid.UUID]*models.Order
	items       map[uuid.UUID]*models.Item
	production  map[uuid.UUID]*models.ProductionStatus
	assignments map[uuid.UUID]*models.OrderTailor

	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:      map[uuid.UUID]*models.Order{},
		items:       map[uuid.UUID]*models.Item{},
		production:  map[uuid.UUID]*models.ProductionStatus{},
		assignments: map[uuid.UUID]*models.OrderTailor{},
	}
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	for _, order := range s.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if customerID != nil && order.CustomerID != *customerID {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderRepo) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	return nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.orders, id)
	return nil
}

func (s *stubOrderRepo) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.ID = uuid.New()
	s.items[item.ID] = item
	return item, nil
}

func (s *stubOrderRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubOrderRepo) UpdateItem(ctx context.Context, id uuid.UUID, values map[string]any) error {
	item, ok := s.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if qty, ok := values["quantity"].(int); ok {
		item.Quantity = qty
	}
	return nil
}

func (s *stubOrderRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubOrderRepo) FindProduction(ctx context.Context, orderID uuid.UUID) (*models.ProductionStatus, error) {
	row, ok := s.production[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubOrderRepo) UpsertProduction(ctx context.Context, row *models.ProductionStatus) (*models.ProductionStatus, error) {
	existing, ok := s.production[row.OrderID]
	if ok {
		existing.Stage = row.Stage
		if row.Notes != nil {
			existing.Notes = row.Notes
		}
		return existing, nil
	}
	row.ID = uuid.New()
	s.production[row.OrderID] = row
	return row, nil
}

func (s *stubOrderRepo) CreateAssignment(ctx context.Context, row *models.OrderTailor) (*models.OrderTailor, error) {
	for _, existing := range s.assignments {
		if existing.OrderID == row.OrderID && existing.TailorID == row.TailorID {
			return nil, errors.New(`duplicate key value violates unique constraint "idx_order_tailor"`)
		}
	}
	row.ID = uuid.New()
	s.assignments[row.ID] = row
	return row, nil
}

func (s *stubOrderRepo) FindAssignmentByID(ctx context.Context, id uuid.UUID) (*models.OrderTailor, error) {
	row, ok := s.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubOrderRepo) UpdateAssignment(ctx context.Context, id uuid.UUID, values map[string]any) error {
	row, ok := s.assignments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := values["status"].(enums.AssignmentStatus); ok {
		row.Status = status
	}
	return nil
}

func (s *stubOrderRepo) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	delete(s.assignments, id)
	return nil
}

type stubTx struct {
	calls int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

type stubAuditLog struct {
	entries []audit.Entry
}

func (s *stubAuditLog) RecordTx(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

type stubCustomers struct {
	known map[uuid.UUID]bool
}

func (s *stubCustomers) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Customer{ID: id}, nil
}

type stubTailors struct {
	tailors map[uuid.UUID]*models.Tailor
}

func (s *stubTailors) FindByID(ctx context.Context, id uuid.UUID) (*models.Tailor, error) {
	tailor, ok := s.tailors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tailor, nil
}

type orderFixture struct {
	svc       Service
	repo      *stubOrderRepo
	tx        *stubTx
	audit     *stubAuditLog
	customers *stubCustomers
	tailors   *stubTailors
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		repo:      newStubOrderRepo(),
		tx:        &stubTx{},
		audit:     &stubAuditLog{},
		customers: &stubCustomers{known: map[uuid.UUID]bool{}},
		tailors:   &stubTailors{tailors: map[uuid.UUID]*models.Tailor{}},
	}
	svc, err := NewService(f.repo, f.tx, f.audit, f.customers, f.tailors)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	return f
}

func TestCreateOrderWithItems(t *testing.T) {
	f := newOrderFixture(t)
	customerID := uuid.New()
	f.customers.known[customerID] = true

	dto, err := f.svc.Create(context.Background(), CreateOrderRequest{
		OrderNumber: "ORD-1001",
		CustomerID:  customerID,
		Items: []CreateItemRequest{
			{GarmentType: "jacket", Quantity: 1},
			{GarmentType: "pant", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.OrderNumber != "ORD-1001" {
		t.Fatalf("order number = %q", dto.OrderNumber)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(dto.Items))
	}
	if f.tx.calls != 1 {
		t.Fatalf("tx calls = %d, want 1", f.tx.calls)
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), CreateOrderRequest{
		OrderNumber: "ORD-1002",
		CustomerID:  uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreateOrderDuplicateNumber(t *testing.T) {
	f := newOrderFixture(t)
	customerID := uuid.New()
	f.customers.known[customerID] = true

	if _, err := f.svc.Create(context.Background(), CreateOrderRequest{
		OrderNumber: "ORD-1003",
		CustomerID:  customerID,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.svc.Create(context.Background(), CreateOrderRequest{
		OrderNumber: "ORD-1003",
		CustomerID:  customerID,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestCreateOrderRejectsBadGarment(t *testing.T) {
	f := newOrderFixture(t)
	customerID := uuid.New()
	f.customers.known[customerID] = true

	_, err := f.svc.Create(context.Background(), CreateOrderRequest{
		OrderNumber: "ORD-1004",
		CustomerID:  customerID,
		Items:       []CreateItemRequest{{GarmentType: "cape", Quantity: 1}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestDeleteOrderWritesAuditRow(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	f.repo.orders[orderID] = &models.Order{ID: orderID, OrderNumber: "ORD-2001"}
	actor := uuid.New()

	if err := f.svc.Delete(context.Background(), &actor, orderID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := f.repo.orders[orderID]; ok {
		t.Fatal("order should be gone")
	}
	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != "order.delete" {
		t.Fatalf("audit entries = %+v", f.audit.entries)
	}
}

func TestUpdateProductionCreatesThenAdvances(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	f.repo.orders[orderID] = &models.Order{ID: orderID, OrderNumber: "ORD-3001"}

	dto, err := f.svc.UpdateProduction(context.Background(), nil, orderID, UpdateProductionRequest{Stage: "cutting"})
	if err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if dto.Stage != enums.ProductionStageCutting {
		t.Fatalf("stage = %s, want cutting", dto.Stage)
	}

	dto, err = f.svc.UpdateProduction(context.Background(), nil, orderID, UpdateProductionRequest{Stage: "stitching"})
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if dto.Stage != enums.ProductionStageStitching {
		t.Fatalf("stage = %s, want stitching", dto.Stage)
	}
	if len(f.repo.production) != 1 {
		t.Fatal("order must keep a single production row")
	}
	if len(f.audit.entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(f.audit.entries))
	}
}

func TestUpdateProductionRejectsUnknownStage(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	f.repo.orders[orderID] = &models.Order{ID: orderID}

	_, err := f.svc.UpdateProduction(context.Background(), nil, orderID, UpdateProductionRequest{Stage: "ironing"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestAssignTailor(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	tailorID := uuid.New()
	f.repo.orders[orderID] = &models.Order{ID: orderID}
	f.tailors.tailors[tailorID] = &models.Tailor{ID: tailorID, Active: true}

	dto, err := f.svc.AssignTailor(context.Background(), orderID, AssignTailorRequest{TailorID: tailorID})
	if err != nil {
		t.Fatalf("AssignTailor: %v", err)
	}
	if dto.Status != enums.AssignmentStatusAssigned {
		t.Fatalf("status = %s, want assigned", dto.Status)
	}

	_, err = f.svc.AssignTailor(context.Background(), orderID, AssignTailorRequest{TailorID: tailorID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT on double assign, got %v", err)
	}
}

func TestAssignInactiveTailor(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	tailorID := uuid.New()
	f.repo.orders[orderID] = &models.Order{ID: orderID}
	f.tailors.tailors[tailorID] = &models.Tailor{ID: tailorID, Active: false}

	_, err := f.svc.AssignTailor(context.Background(), orderID, AssignTailorRequest{TailorID: tailorID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestUpdateAssignmentScopedToOrder(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	assignmentID := uuid.New()
	f.repo.assignments[assignmentID] = &models.OrderTailor{
		ID:       assignmentID,
		OrderID:  orderID,
		TailorID: uuid.New(),
		Status:   enums.AssignmentStatusAssigned,
	}

	status := "in_progress"
	dto, err := f.svc.UpdateAssignment(context.Background(), orderID, assignmentID, UpdateAssignmentRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateAssignment: %v", err)
	}
	if dto.Status != enums.AssignmentStatusInProgress {
		t.Fatalf("status = %s, want in_progress", dto.Status)
	}

	_, err = f.svc.UpdateAssignment(context.Background(), uuid.New(), assignmentID, UpdateAssignmentRequest{Status: &status})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for foreign order, got %v", err)
	}
}

func TestUnassignTailor(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.New()
	assignmentID := uuid.New()
	f.repo.assignments[assignmentID] = &models.OrderTailor{ID: assignmentID, OrderID: orderID}

	if err := f.svc.Unassign(context.Background(), orderID, assignmentID); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if _, ok := f.repo.assignments[assignmentID]; ok {
		t.Fatal("assignment should be gone")
	}
}
