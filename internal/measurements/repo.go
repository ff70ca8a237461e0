package measurements

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// Repository exposes measurement persistence across the six kind tables.
type Repository interface {
	FindByOrder(ctx context.Context, kind enums.MeasurementKind, customerID, orderID uuid.UUID) (*Record, error)
	FindLatest(ctx context.Context, kind enums.MeasurementKind, customerID uuid.UUID) (*Record, error)
	Create(ctx context.Context, kind enums.MeasurementKind, rec *Record) (*Record, error)
	Update(ctx context.Context, kind enums.MeasurementKind, id uuid.UUID, values map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a measurements repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// tableFor maps a kind onto its table name.
func tableFor(kind enums.MeasurementKind) string {
	switch kind {
	case enums.MeasurementKindJacket:
		return "jacket_measurements"
	case enums.MeasurementKindJacketFinal:
		return "final_jacket_measurements"
	case enums.MeasurementKindShirt:
		return "shirt_measurements"
	case enums.MeasurementKindShirtFinal:
		return "final_shirt_measurements"
	case enums.MeasurementKindPant:
		return "pant_measurements"
	case enums.MeasurementKindPantFinal:
		return "final_pant_measurements"
	}
	return ""
}

// garmentFor maps a kind onto the garment whose columns the table carries.
func garmentFor(kind enums.MeasurementKind) enums.GarmentType {
	switch kind {
	case enums.MeasurementKindJacket, enums.MeasurementKindJacketFinal:
		return enums.GarmentTypeJacket
	case enums.MeasurementKindShirt, enums.MeasurementKindShirtFinal:
		return enums.GarmentTypeShirt
	default:
		return enums.GarmentTypePant
	}
}

func (r *repository) FindByOrder(ctx context.Context, kind enums.MeasurementKind, customerID, orderID uuid.UUID) (*Record, error) {
	return r.findOne(ctx, kind, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ? AND order_id = ?", customerID, orderID)
	})
}

func (r *repository) FindLatest(ctx context.Context, kind enums.MeasurementKind, customerID uuid.UUID) (*Record, error) {
	return r.findOne(ctx, kind, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ?", customerID).Order("created_at DESC")
	})
}

func (r *repository) findOne(ctx context.Context, kind enums.MeasurementKind, scope func(*gorm.DB) *gorm.DB) (*Record, error) {
	q := scope(r.db.WithContext(ctx).Table(tableFor(kind)))
	switch garmentFor(kind) {
	case enums.GarmentTypeJacket:
		var row models.JacketMeasurement
		if err := q.First(&row).Error; err != nil {
			return nil, err
		}
		return jacketToRecord(&row), nil
	case enums.GarmentTypeShirt:
		var row models.ShirtMeasurement
		if err := q.First(&row).Error; err != nil {
			return nil, err
		}
		return shirtToRecord(&row), nil
	default:
		var row models.PantMeasurement
		if err := q.First(&row).Error; err != nil {
			return nil, err
		}
		return pantToRecord(&row), nil
	}
}

func (r *repository) Create(ctx context.Context, kind enums.MeasurementKind, rec *Record) (*Record, error) {
	q := r.db.WithContext(ctx).Table(tableFor(kind))
	switch garmentFor(kind) {
	case enums.GarmentTypeJacket:
		row, err := recordToJacket(rec)
		if err != nil {
			return nil, err
		}
		if err := q.Create(row).Error; err != nil {
			return nil, err
		}
		return jacketToRecord(row), nil
	case enums.GarmentTypeShirt:
		row, err := recordToShirt(rec)
		if err != nil {
			return nil, err
		}
		if err := q.Create(row).Error; err != nil {
			return nil, err
		}
		return shirtToRecord(row), nil
	default:
		row, err := recordToPant(rec)
		if err != nil {
			return nil, err
		}
		if err := q.Create(row).Error; err != nil {
			return nil, err
		}
		return pantToRecord(row), nil
	}
}

func (r *repository) Update(ctx context.Context, kind enums.MeasurementKind, id uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Table(tableFor(kind)).
		Where("id = ?", id).
		Updates(values).Error
}

func jacketToRecord(row *models.JacketMeasurement) *Record {
	return &Record{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		OrderID:    row.OrderID,
		Dimensions: map[string]decimal.Decimal{
			"length":   row.Length,
			"shoulder": row.Shoulder,
			"sleeve":   row.Sleeve,
			"chest":    row.Chest,
			"waist":    row.Waist,
			"hip":      row.Hip,
			"neck":     row.Neck,
		},
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func recordToJacket(rec *Record) (*models.JacketMeasurement, error) {
	dims, err := pickDimensions(rec.Dimensions, enums.GarmentTypeJacket)
	if err != nil {
		return nil, err
	}
	return &models.JacketMeasurement{
		CustomerID: rec.CustomerID,
		OrderID:    rec.OrderID,
		Length:     dims["length"],
		Shoulder:   dims["shoulder"],
		Sleeve:     dims["sleeve"],
		Chest:      dims["chest"],
		Waist:      dims["waist"],
		Hip:        dims["hip"],
		Neck:       dims["neck"],
		Notes:      rec.Notes,
	}, nil
}

func shirtToRecord(row *models.ShirtMeasurement) *Record {
	return &Record{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		OrderID:    row.OrderID,
		Dimensions: map[string]decimal.Decimal{
			"length":   row.Length,
			"shoulder": row.Shoulder,
			"sleeve":   row.Sleeve,
			"chest":    row.Chest,
			"waist":    row.Waist,
			"collar":   row.Collar,
			"cuff":     row.Cuff,
		},
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func recordToShirt(rec *Record) (*models.ShirtMeasurement, error) {
	dims, err := pickDimensions(rec.Dimensions, enums.GarmentTypeShirt)
	if err != nil {
		return nil, err
	}
	return &models.ShirtMeasurement{
		CustomerID: rec.CustomerID,
		OrderID:    rec.OrderID,
		Length:     dims["length"],
		Shoulder:   dims["shoulder"],
		Sleeve:     dims["sleeve"],
		Chest:      dims["chest"],
		Waist:      dims["waist"],
		Collar:     dims["collar"],
		Cuff:       dims["cuff"],
		Notes:      rec.Notes,
	}, nil
}

func pantToRecord(row *models.PantMeasurement) *Record {
	return &Record{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		OrderID:    row.OrderID,
		Dimensions: map[string]decimal.Decimal{
			"length": row.Length,
			"waist":  row.Waist,
			"hip":    row.Hip,
			"thigh":  row.Thigh,
			"knee":   row.Knee,
			"bottom": row.Bottom,
			"inseam": row.Inseam,
		},
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func recordToPant(rec *Record) (*models.PantMeasurement, error) {
	dims, err := pickDimensions(rec.Dimensions, enums.GarmentTypePant)
	if err != nil {
		return nil, err
	}
	return &models.PantMeasurement{
		CustomerID: rec.CustomerID,
		OrderID:    rec.OrderID,
		Length:     dims["length"],
		Waist:      dims["waist"],
		Hip:        dims["hip"],
		Thigh:      dims["thigh"],
		Knee:       dims["knee"],
		Bottom:     dims["bottom"],
		Inseam:     dims["inseam"],
		Notes:      rec.Notes,
	}, nil
}

// pickDimensions requires exactly the garment's dimension set to be present.
func pickDimensions(dims map[string]decimal.Decimal, garment enums.GarmentType) (map[string]decimal.Decimal, error) {
	required := dimensionFields[garment]
	out := make(map[string]decimal.Decimal, len(required))
	for _, field := range required {
		value, ok := dims[field]
		if !ok {
			return nil, fmt.Errorf("missing dimension %q", field)
		}
		out[field] = value
	}
	if len(dims) != len(required) {
		for name := range dims {
			if _, ok := out[name]; !ok {
				return nil, fmt.Errorf("unknown dimension %q", name)
			}
		}
	}
	return out, nil
}
