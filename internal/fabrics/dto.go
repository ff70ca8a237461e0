package fabrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
)

// FabricDTO is the public shape of a fabric record. The image key is internal;
// clients get signed read URLs through the image endpoint instead.
type FabricDTO struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Code            string            `json:"code"`
	Color           *string           `json:"color,omitempty"`
	Composition     *string           `json:"composition,omitempty"`
	AvailableLength decimal.Decimal   `json:"available_length"`
	PricePerMeter   *decimal.Decimal  `json:"price_per_meter,omitempty"`
	SupplierID      *uuid.UUID        `json:"supplier_id,omitempty"`
	ImageStatus     enums.ImageStatus `json:"image_status"`
	HasImage        bool              `json:"has_image"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// FromModel maps a fabric row to its DTO.
func FromModel(f *models.Fabric) *FabricDTO {
	if f == nil {
		return nil
	}
	return &FabricDTO{
		ID:              f.ID,
		Name:            f.Name,
		Code:            f.Code,
		Color:           f.Color,
		Composition:     f.Composition,
		AvailableLength: f.AvailableLength,
		PricePerMeter:   f.PricePerMeter,
		SupplierID:      f.SupplierID,
		ImageStatus:     f.ImageStatus,
		HasImage:        f.ImageKey != nil,
		Notes:           f.Notes,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// CreateFabricRequest carries the payload for adding a fabric to stock.
type CreateFabricRequest struct {
	Name            string           `json:"name" validate:"required,min=2"`
	Code            string           `json:"code" validate:"required,min=2"`
	Color           *string          `json:"color,omitempty"`
	Composition     *string          `json:"composition,omitempty"`
	AvailableLength decimal.Decimal  `json:"available_length"`
	PricePerMeter   *decimal.Decimal `json:"price_per_meter,omitempty"`
	SupplierID      *uuid.UUID       `json:"supplier_id,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// UpdateFabricRequest carries a partial fabric update. Nil fields are untouched.
type UpdateFabricRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=2"`
	Color           *string          `json:"color,omitempty"`
	Composition     *string          `json:"composition,omitempty"`
	AvailableLength *decimal.Decimal `json:"available_length,omitempty"`
	PricePerMeter   *decimal.Decimal `json:"price_per_meter,omitempty"`
	SupplierID      *uuid.UUID       `json:"supplier_id,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// PresignImageRequest asks for a signed PUT URL for the fabric photograph.
type PresignImageRequest struct {
	FileName  string `json:"file_name" validate:"required"`
	MimeType  string `json:"mime_type" validate:"required"`
	SizeBytes int64  `json:"size_bytes" validate:"required,gt=0"`
}

// PresignImageResponse carries the signed PUT URL the client uploads to.
type PresignImageResponse struct {
	FabricID     uuid.UUID `json:"fabric_id"`
	ObjectKey    string    `json:"object_key"`
	SignedPUTURL string    `json:"signed_put_url"`
	ContentType  string    `json:"content_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ImageURLResponse carries a signed GET URL for a confirmed image.
type ImageURLResponse struct {
	FabricID  uuid.UUID `json:"fabric_id"`
	SignedURL string    `json:"signed_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FabricOrderDTO is the public shape of a restock request.
type FabricOrderDTO struct {
	ID         uuid.UUID               `json:"id"`
	FabricID   uuid.UUID               `json:"fabric_id"`
	SupplierID uuid.UUID               `json:"supplier_id"`
	Length     decimal.Decimal         `json:"length"`
	Status     enums.FabricOrderStatus `json:"status"`
	ExpectedAt *time.Time              `json:"expected_at,omitempty"`
	ReceivedAt *time.Time              `json:"received_at,omitempty"`
	Notes      *string                 `json:"notes,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

func fabricOrderFromModel(fo *models.FabricOrder) *FabricOrderDTO {
	if fo == nil {
		return nil
	}
	return &FabricOrderDTO{
		ID:         fo.ID,
		FabricID:   fo.FabricID,
		SupplierID: fo.SupplierID,
		Length:     fo.Length,
		Status:     fo.Status,
		ExpectedAt: fo.ExpectedAt,
		ReceivedAt: fo.ReceivedAt,
		Notes:      fo.Notes,
		CreatedAt:  fo.CreatedAt,
		UpdatedAt:  fo.UpdatedAt,
	}
}

// CreateFabricOrderRequest places a restock request with a supplier.
type CreateFabricOrderRequest struct {
	FabricID   uuid.UUID       `json:"fabric_id" validate:"required"`
	SupplierID uuid.UUID       `json:"supplier_id" validate:"required"`
	Length     decimal.Decimal `json:"length" validate:"required"`
	ExpectedAt *time.Time      `json:"expected_at,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
}

// UpdateFabricOrderRequest moves a restock request through its lifecycle.
type UpdateFabricOrderRequest struct {
	Status     *string    `json:"status,omitempty"`
	ExpectedAt *time.Time `json:"expected_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}
