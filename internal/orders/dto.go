package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// OrderDTO is the public shape of an order with its nested records.
type OrderDTO struct {
	ID          uuid.UUID        `json:"id"`
	OrderNumber string           `json:"order_number"`
	CustomerID  uuid.UUID        `json:"customer_id"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	TotalPrice  *decimal.Decimal `json:"total_price,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Items       []ItemDTO        `json:"items"`
	Production  *ProductionDTO   `json:"production,omitempty"`
	Assignments []AssignmentDTO  `json:"assignments,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ItemDTO is one garment line on an order.
type ItemDTO struct {
	ID             uuid.UUID         `json:"id"`
	OrderID        uuid.UUID         `json:"order_id"`
	GarmentType    enums.GarmentType `json:"garment_type"`
	FabricID       *uuid.UUID        `json:"fabric_id,omitempty"`
	LiningFabricID *uuid.UUID        `json:"lining_fabric_id,omitempty"`
	MeasurementID  *uuid.UUID        `json:"measurement_id,omitempty"`
	Quantity       int               `json:"quantity"`
	Notes          *string           `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductionDTO reports where an order sits in the workshop pipeline.
type ProductionDTO struct {
	ID        uuid.UUID             `json:"id"`
	OrderID   uuid.UUID             `json:"order_id"`
	Stage     enums.ProductionStage `json:"stage"`
	Notes     *string               `json:"notes,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// AssignmentDTO is one tailor assignment on an order.
type AssignmentDTO struct {
	ID        uuid.UUID              `json:"id"`
	OrderID   uuid.UUID              `json:"order_id"`
	TailorID  uuid.UUID              `json:"tailor_id"`
	Status    enums.AssignmentStatus `json:"status"`
	DueDate   *time.Time             `json:"due_date,omitempty"`
	Notes     *string                `json:"notes,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// CreateOrderRequest carries the payload for opening an order.
type CreateOrderRequest struct {
	OrderNumber string              `json:"order_number" validate:"required,min=1"`
	CustomerID  uuid.UUID           `json:"customer_id" validate:"required"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	TotalPrice  *decimal.Decimal    `json:"total_price,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Items       []CreateItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// UpdateOrderRequest carries a partial order update. Nil fields are untouched.
type UpdateOrderRequest struct {
	DueDate    *time.Time       `json:"due_date,omitempty"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// CreateItemRequest adds one garment line to an order.
type CreateItemRequest struct {
	GarmentType    string     `json:"garment_type" validate:"required"`
	FabricID       *uuid.UUID `json:"fabric_id,omitempty"`
	LiningFabricID *uuid.UUID `json:"lining_fabric_id,omitempty"`
	MeasurementID  *uuid.UUID `json:"measurement_id,omitempty"`
	Quantity       int        `json:"quantity" validate:"required,gt=0"`
	Notes          *string    `json:"notes,omitempty"`
}

// UpdateItemRequest carries a partial item update.
type UpdateItemRequest struct {
	FabricID       *uuid.UUID `json:"fabric_id,omitempty"`
	LiningFabricID *uuid.UUID `json:"lining_fabric_id,omitempty"`
	MeasurementID  *uuid.UUID `json:"measurement_id,omitempty"`
	Quantity       *int       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Notes          *string    `json:"notes,omitempty"`
}

// UpdateProductionRequest moves an order to another production stage.
type UpdateProductionRequest struct {
	Stage string  `json:"stage" validate:"required"`
	Notes *string `json:"notes,omitempty"`
}

// AssignTailorRequest puts a tailor on an order.
type AssignTailorRequest struct {
	TailorID uuid.UUID  `json:"tailor_id" validate:"required"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// UpdateAssignmentRequest changes an assignment's status or schedule.
type UpdateAssignmentRequest struct {
	Status  *string    `json:"status,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// FromModel maps an order row (with any preloaded associations) to its DTO.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		DueDate:     o.DueDate,
		TotalPrice:  o.TotalPrice,
		Notes:       o.Notes,
		Items:       make([]ItemDTO, 0, len(o.Items)),
		Production:  productionFromModel(o.Production),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i := range o.Items {
		dto.Items = append(dto.Items, *itemFromModel(&o.Items[i]))
	}
	for i := range o.Assignments {
		dto.Assignments = append(dto.Assignments, *assignmentFromModel(&o.Assignments[i]))
	}
	return dto
}

func itemFromModel(it *models.Item) *ItemDTO {
	if it == nil {
		return nil
	}
	return &ItemDTO{
		ID:             it.ID,
		OrderID:        it.OrderID,
		GarmentType:    it.GarmentType,
		FabricID:       it.FabricID,
		LiningFabricID: it.LiningFabricID,
		MeasurementID:  it.MeasurementID,
		Quantity:       it.Quantity,
		Notes:          it.Notes,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

func productionFromModel(p *models.ProductionStatus) *ProductionDTO {
	if p == nil {
		return nil
	}
	return &ProductionDTO{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Stage:     p.Stage,
		Notes:     p.Notes,
		UpdatedAt: p.UpdatedAt,
	}
}

func assignmentFromModel(a *models.OrderTailor) *AssignmentDTO {
	if a == nil {
		return nil
	}
	return &AssignmentDTO{
		ID:        a.ID,
		OrderID:   a.OrderID,
		TailorID:  a.TailorID,
		Status:    a.Status,
		DueDate:   a.DueDate,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
