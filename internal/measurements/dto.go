package measurements

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// dimensionFields lists the required dimension columns per garment. The final
// tables mirror their base table, so the set depends only on the garment.
var dimensionFields = map[enums.GarmentType][]string{
	enums.GarmentTypeJacket: {"length", "shoulder", "sleeve", "chest", "waist", "hip", "neck"},
	enums.GarmentTypeShirt:  {"length", "shoulder", "sleeve", "chest", "waist", "collar", "cuff"},
	enums.GarmentTypePant:   {"length", "waist", "hip", "thigh", "knee", "bottom", "inseam"},
}

// MeasurementDTO is the public shape of one measurement record.
type MeasurementDTO struct {
	ID         uuid.UUID                  `json:"id"`
	CustomerID uuid.UUID                  `json:"customer_id"`
	OrderID    uuid.UUID                  `json:"order_id"`
	Kind       enums.MeasurementKind      `json:"kind"`
	Dimensions map[string]decimal.Decimal `json:"dimensions"`
	Notes      *string                    `json:"notes,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// UpsertMeasurementRequest carries the payload for recording or adjusting a
// measurement. All dimensions for the garment must be present on create;
// updates may send a subset.
type UpsertMeasurementRequest struct {
	OrderID    uuid.UUID                  `json:"order_id" validate:"required"`
	Dimensions map[string]decimal.Decimal `json:"dimensions" validate:"required,min=1"`
	Notes      *string                    `json:"notes,omitempty"`
}

// Record is the package-internal, table-agnostic view of a measurement row.
type Record struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	OrderID    uuid.UUID
	Dimensions map[string]decimal.Decimal
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *Record) toDTO(kind enums.MeasurementKind) *MeasurementDTO {
	if r == nil {
		return nil
	}
	return &MeasurementDTO{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		OrderID:    r.OrderID,
		Kind:       kind,
		Dimensions: r.Dimensions,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
