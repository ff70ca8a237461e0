package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// LocationDTO is the public shape of a storage location.
type LocationDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RackDTO is the public shape of a rack with its utilization counter.
type RackDTO struct {
	ID                 uuid.UUID `json:"id"`
	LocationID         uuid.UUID `json:"location_id"`
	Name               string    `json:"name"`
	Capacity           int       `json:"capacity"`
	CurrentUtilization int       `json:"current_utilization"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BunchDTO is the public shape of a bunch with its items.
type BunchDTO struct {
	ID            uuid.UUID          `json:"id"`
	RackID        uuid.UUID          `json:"rack_id"`
	Name          string             `json:"name"`
	Items         []InventoryItemDTO `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InventoryItemDTO is the public shape of one stored item.
type InventoryItemDTO struct {
	ID           uuid.UUID  `json:"id"`
	BunchID      uuid.UUID  `json:"bunch_id"`
	Name         string     `json:"name"`
	MaterialType *string    `json:"material_type,omitempty"`
	Quantity     int        `json:"quantity"`
	UnitID       *uuid.UUID `json:"unit_id,omitempty"`
	SupplierID   *uuid.UUID `json:"supplier_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UnitDTO is the public shape of a measurement unit.
type UnitDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLocationRequest adds a storage site.
type CreateLocationRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Address *string `json:"address,omitempty"`
}

// UpdateLocationRequest carries a partial location update.
type UpdateLocationRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Address *string `json:"address,omitempty"`
}

// CreateRackRequest adds a rack to a location.
type CreateRackRequest struct {
	LocationID uuid.UUID `json:"location_id" validate:"required"`
	Name       string    `json:"name" validate:"required,min=1"`
	Capacity   int       `json:"capacity" validate:"required,gt=0"`
}

// UpdateRackRequest carries a partial rack update. Capacity edits are checked
// against the rack's current utilization.
type UpdateRackRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
}

// CreateBunchRequest adds a bunch to a rack.
type CreateBunchRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// NewItemInput is one item to add to a bunch.
type NewItemInput struct {
	Name         string     `json:"name" validate:"required,min=1"`
	MaterialType *string    `json:"material_type,omitempty"`
	Quantity     int        `json:"quantity" validate:"required,gt=0"`
	UnitID       *uuid.UUID `json:"unit_id,omitempty"`
	SupplierID   *uuid.UUID `json:"supplier_id,omitempty"`
}

// AddBunchItemsRequest adds items to a bunch behind the capacity check.
type AddBunchItemsRequest struct {
	Items []NewItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateItemInput is one in-place item edit.
type UpdateItemInput struct {
	ID           uuid.UUID  `json:"id" validate:"required"`
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	MaterialType *string    `json:"material_type,omitempty"`
	Quantity     *int       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitID       *uuid.UUID `json:"unit_id,omitempty"`
	SupplierID   *uuid.UUID `json:"supplier_id,omitempty"`
}

// UpdateBunchItemsRequest edits items in place, then the rack utilization is
// recomputed from rows.
type UpdateBunchItemsRequest struct {
	Items []UpdateItemInput `json:"items" validate:"required,min=1,dive"`
}

// DeleteBunchItemsRequest removes items from a bunch.
type DeleteBunchItemsRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids" validate:"required,min=1"`
}

// MoveBunchRequest moves a bunch onto another rack.
type MoveBunchRequest struct {
	NewRackID uuid.UUID `json:"new_rack_id" validate:"required"`
}

// CreateUnitRequest adds a measurement unit.
type CreateUnitRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Symbol string `json:"symbol" validate:"required,min=1"`
}

func locationFromModel(l *models.Location) *LocationDTO {
	if l == nil {
		return nil
	}
	return &LocationDTO{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func rackFromModel(r *models.Rack) *RackDTO {
	if r == nil {
		return nil
	}
	return &RackDTO{
		ID:                 r.ID,
		LocationID:         r.LocationID,
		Name:               r.Name,
		Capacity:           r.Capacity,
		CurrentUtilization: r.CurrentUtilization,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func bunchFromModel(b *models.Bunch) *BunchDTO {
	if b == nil {
		return nil
	}
	dto := &BunchDTO{
		ID:        b.ID,
		RackID:    b.RackID,
		Name:      b.Name,
		Items:     make([]InventoryItemDTO, 0, len(b.Items)),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	for i := range b.Items {
		dto.Items = append(dto.Items, *itemFromModel(&b.Items[i]))
		dto.TotalQuantity += b.Items[i].Quantity
	}
	return dto
}

func itemFromModel(it *models.InventoryItem) *InventoryItemDTO {
	if it == nil {
		return nil
	}
	return &InventoryItemDTO{
		ID:           it.ID,
		BunchID:      it.BunchID,
		Name:         it.Name,
		MaterialType: it.MaterialType,
		Quantity:     it.Quantity,
		UnitID:       it.UnitID,
		SupplierID:   it.SupplierID,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

func unitFromModel(u *models.Unit) *UnitDTO {
	if u == nil {
		return nil
	}
	return &UnitDTO{
		ID:        u.ID,
		Name:      u.Name,
		Symbol:    u.Symbol,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
