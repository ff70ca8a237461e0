package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Repository exposes order persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, values map[string]any) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	FindProduction(ctx context.Context, orderID uuid.UUID) (*models.ProductionStatus, error)
	UpsertProduction(ctx context.Context, row *models.ProductionStatus) (*models.ProductionStatus, error)

	CreateAssignment(ctx context.Context, row *models.OrderTailor) (*models.OrderTailor, error)
	FindAssignmentByID(ctx context.Context, id uuid.UUID) (*models.OrderTailor, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, values map[string]any) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Production").
		Preload("Assignments").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	var rows []models.Order
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(values).Error
}

// Delete removes the order. Items, production status and assignments go with
// it through the FK cascade.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

func (r *repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateItem(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{}).Error
}

func (r *repository) FindProduction(ctx context.Context, orderID uuid.UUID) (*models.ProductionStatus, error) {
	var row models.ProductionStatus
	if err := r.db.WithContext(ctx).First(&row, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertProduction writes the order's single production row, creating it on
// first transition.
func (r *repository) UpsertProduction(ctx context.Context, row *models.ProductionStatus) (*models.ProductionStatus, error) {
	var existing models.ProductionStatus
	err := r.db.WithContext(ctx).First(&existing, "order_id = ?", row.OrderID).Error
	switch {
	case err == nil:
		values := map[string]any{"stage": row.Stage}
		if row.Notes != nil {
			values["notes"] = *row.Notes
		}
		if err := r.db.WithContext(ctx).
			Model(&models.ProductionStatus{}).
			Where("id = ?", existing.ID).
			Updates(values).Error; err != nil {
			return nil, err
		}
		return r.FindProduction(ctx, row.OrderID)
	case db.IsNotFound(err):
		if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
			return nil, err
		}
		return row, nil
	default:
		return nil, err
	}
}

func (r *repository) CreateAssignment(ctx context.Context, row *models.OrderTailor) (*models.OrderTailor, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindAssignmentByID(ctx context.Context, id uuid.UUID) (*models.OrderTailor, error) {
	var row models.OrderTailor
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateAssignment(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.OrderTailor{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OrderTailor{}).Error
}
