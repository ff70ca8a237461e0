package suppliers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Repository exposes supplier persistence.
type Repository interface {
	Create(ctx context.Context, row *models.Supplier) (*models.Supplier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]models.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a supplier repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, row *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var row models.Supplier
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]models.Supplier, error) {
	var rows []models.Supplier
	err := r.db.WithContext(ctx).
		Order("name ASC").
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
		Model(&models.Supplier{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Supplier{}).Error
}

// CountReferences counts rows in other tables still pointing at the supplier.
func (r *repository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var fabrics int64
	err := r.db.WithContext(ctx).
		Model(&models.Fabric{}).
		Where("supplier_id = ?", id).
		Count(&fabrics).Error
	if err != nil {
		return 0, err
	}
	var items int64
	err = r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("supplier_id = ?", id).
		Count(&items).Error
	if err != nil {
		return 0, err
	}
	return fabrics + items, nil
}
