package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// Repository exposes persistence for the storage hierarchy.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateLocation(ctx context.Context, row *models.Location) (*models.Location, error)
	FindLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	ListLocations(ctx context.Context, limit, offset int) ([]models.Location, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, values map[string]any) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error
	CountRacks(ctx context.Context, locationID uuid.UUID) (int64, error)

	CreateRack(ctx context.Context, row *models.Rack) (*models.Rack, error)
	FindRackByID(ctx context.Context, id uuid.UUID) (*models.Rack, error)
	ListRacks(ctx context.Context, locationID *uuid.UUID, limit, offset int) ([]models.Rack, error)
	UpdateRack(ctx context.Context, id uuid.UUID, values map[string]any) error
	DeleteRack(ctx context.Context, id uuid.UUID) error
	CountBunches(ctx context.Context, rackID uuid.UUID) (int64, error)

	CreateBunch(ctx context.Context, row *models.Bunch) (*models.Bunch, error)
	FindBunchByID(ctx context.Context, id uuid.UUID) (*models.Bunch, error)
	ListBunches(ctx context.Context, rackID uuid.UUID) ([]models.Bunch, error)
	SetBunchRack(ctx context.Context, bunchID, rackID uuid.UUID) error
	DeleteBunch(ctx context.Context, id uuid.UUID) error

	CreateItems(ctx context.Context, rows []models.InventoryItem) error
	FindItemInBunch(ctx context.Context, bunchID, itemID uuid.UUID) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, values map[string]any) error
	DeleteItemsInBunch(ctx context.Context, bunchID uuid.UUID, itemIDs []uuid.UUID) (int64, error)

	RackQuantityTotal(ctx context.Context, rackID uuid.UUID) (int, error)
	BunchQuantityTotal(ctx context.Context, bunchID uuid.UUID) (int, error)
	SetRackUtilization(ctx context.Context, rackID uuid.UUID, value int) error
	AdjustRackUtilization(ctx context.Context, rackID uuid.UUID, delta int) error

	CreateUnit(ctx context.Context, row *models.Unit) (*models.Unit, error)
	FindUnitByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateLocation(ctx context.Context, row *models.Location) (*models.Location, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var row models.Location
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListLocations(ctx context.Context, limit, offset int) ([]models.Location, error) {
	var rows []models.Location
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateLocation(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{}).Error
}

func (r *repository) CountRacks(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rack{}).
		Where("location_id = ?", locationID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateRack(ctx context.Context, row *models.Rack) (*models.Rack, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindRackByID(ctx context.Context, id uuid.UUID) (*models.Rack, error) {
	var row models.Rack
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListRacks(ctx context.Context, locationID *uuid.UUID, limit, offset int) ([]models.Rack, error) {
	q := r.db.WithContext(ctx).Model(&models.Rack{})
	if locationID != nil {
		q = q.Where("location_id = ?", *locationID)
	}
	var rows []models.Rack
	err := q.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateRack(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Rack{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) DeleteRack(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Rack{}).Error
}

func (r *repository) CountBunches(ctx context.Context, rackID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bunch{}).
		Where("rack_id = ?", rackID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateBunch(ctx context.Context, row *models.Bunch) (*models.Bunch, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindBunchByID(ctx context.Context, id uuid.UUID) (*models.Bunch, error) {
	var row models.Bunch
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListBunches(ctx context.Context, rackID uuid.UUID) ([]models.Bunch, error) {
	var rows []models.Bunch
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("rack_id = ?", rackID).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SetBunchRack(ctx context.Context, bunchID, rackID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Bunch{}).
		Where("id = ?", bunchID).
		Update("rack_id", rackID).Error
}

// DeleteBunch removes the bunch. Its items go with it through the FK cascade.
func (r *repository) DeleteBunch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bunch{}).Error
}

func (r *repository) CreateItems(ctx context.Context, rows []models.InventoryItem) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindItemInBunch(ctx context.Context, bunchID, itemID uuid.UUID) (*models.InventoryItem, error) {
	var row models.InventoryItem
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND bunch_id = ?", itemID, bunchID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateItem(ctx context.Context, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repository) DeleteItemsInBunch(ctx context.Context, bunchID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("bunch_id = ? AND id IN ?", bunchID, itemIDs).
		Delete(&models.InventoryItem{})
	return res.RowsAffected, res.Error
}

// RackQuantityTotal sums item quantities across every bunch on the rack.
func (r *repository) RackQuantityTotal(ctx context.Context, rackID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Joins("JOIN bunches ON bunches.id = inventory_items.bunch_id").
		Where("bunches.rack_id = ?", rackID).
		Select("COALESCE(SUM(inventory_items.quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *repository) BunchQuantityTotal(ctx context.Context, bunchID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("bunch_id = ?", bunchID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *repository) SetRackUtilization(ctx context.Context, rackID uuid.UUID, value int) error {
	return r.db.WithContext(ctx).
		Model(&models.Rack{}).
		Where("id = ?", rackID).
		Update("current_utilization", value).Error
}

func (r *repository) AdjustRackUtilization(ctx context.Context, rackID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Rack{}).
		Where("id = ?", rackID).
		Update("current_utilization", gorm.Expr("current_utilization + ?", delta)).Error
}

func (r *repository) CreateUnit(ctx context.Context, row *models.Unit) (*models.Unit, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindUnitByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var row models.Unit
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var rows []models.Unit
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Unit{}).Error
}
