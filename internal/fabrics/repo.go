package fabrics

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Repository exposes fabric and restock-order persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, fabric *models.Fabric) (*models.Fabric, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Fabric, error)
	FindByCode(ctx context.Context, code string) (*models.Fabric, error)
	List(ctx context.Context, limit, offset int) ([]models.Fabric, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateOrder(ctx context.Context, row *models.FabricOrder) (*models.FabricOrder, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.FabricOrder, error)
	ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]models.FabricOrder, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, values map[string]any) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a fabrics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, fabric *models.Fabric) (*models.Fabric, error) {
	if err := r.db.WithContext(ctx).Create(fabric).Error; err != nil {
		return nil, err
	}
	return fabric, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Fabric, error) {
	var fabric models.Fabric
	if err := r.db.WithContext(ctx).First(&fabric, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fabric, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*models.Fabric, error) {
	var fabric models.Fabric
	if err := r.db.WithContext(ctx).First(&fabric, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &fabric, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]models.Fabric, error) {
	var rows []models.Fabric
	err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
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
		Model(&models.Fabric{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Fabric{}).Error
}

func (r *repository) CreateOrder(ctx context.Context, row *models.FabricOrder) (*models.FabricOrder, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.FabricOrder, error) {
	var row models.FabricOrder
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]models.FabricOrder, error) {
	q := r.db.WithContext(ctx).Model(&models.FabricOrder{})
	if fabricID != nil {
		q = q.Where("fabric_id = ?", *fabricID)
	}
	var rows []models.FabricOrder
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateOrder(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.FabricOrder{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FabricOrder{}).Error
}
