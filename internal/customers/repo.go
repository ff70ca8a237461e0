package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// customerReferences lists every table holding a customer_id foreign key.
// The merge repoints each of them before deleting the source rows.
var customerReferences = []string{
	"orders",
	"jacket_measurements",
	"final_jacket_measurements",
	"shirt_measurements",
	"final_shirt_measurements",
	"pant_measurements",
	"final_pant_measurements",
}

// Repository exposes customer persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, limit, offset int) ([]models.Customer, error)
	Search(ctx context.Context, query string, limit int) ([]models.Customer, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	RepointReferences(ctx context.Context, targetID uuid.UUID, sourceIDs []uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]models.Customer, error) {
	var rows []models.Customer
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, query string, limit int) ([]models.Customer, error) {
	var rows []models.Customer
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("full_name ILIKE ? OR phone LIKE ?", pattern, pattern).
		Order("full_name ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{}).Error
}

func (r *repository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

// RepointReferences rewrites every customer_id reference from the source
// customers to the target and returns the number of rows touched.
func (r *repository) RepointReferences(ctx context.Context, targetID uuid.UUID, sourceIDs []uuid.UUID) (int64, error) {
	var total int64
	for _, table := range customerReferences {
		res := r.db.WithContext(ctx).
			Table(table).
			Where("customer_id IN ?", sourceIDs).
			Update("customer_id", targetID)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}
	return total, nil
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Customer{}).Error
}
