package tailors

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// TailorDTO is the public shape of a tailor.
type TailorDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Specialty *string   `json:"specialty,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTailorRequest registers a tailor. New tailors start active.
type CreateTailorRequest struct {
	FullName  string  `json:"full_name" validate:"required,min=2"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
}

// UpdateTailorRequest carries a partial tailor update.
type UpdateTailorRequest struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func fromModel(t *models.Tailor) *TailorDTO {
	if t == nil {
		return nil
	}
	return &TailorDTO{
		ID:        t.ID,
		FullName:  t.FullName,
		Phone:     t.Phone,
		Specialty: t.Specialty,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
