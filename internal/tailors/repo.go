package tailors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Repository exposes tailor persistence.
type Repository interface {
	Create(ctx context.Context, row *models.Tailor) (*models.Tailor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tailor, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Tailor, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAssignments(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a tailor repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, row *models.Tailor) (*models.Tailor, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tailor, error) {
	var row models.Tailor
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Tailor, error) {
	q := r.db.WithContext(ctx).Model(&models.Tailor{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []models.Tailor
	err := q.Order("full_name ASC").
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
		Model(&models.Tailor{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tailor{}).Error
}

func (r *repository) CountAssignments(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderTailor{}).
		Where("tailor_id = ?", id).
		Count(&count).Error
	return count, err
}
