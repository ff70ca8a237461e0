package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
)

// CustomerDTO is the public shape of a customer record.
type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps a customer row to its DTO.
func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        c.ID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateCustomerRequest carries the payload for creating a customer.
type CreateCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2"`
	Phone    string  `json:"phone" validate:"required,min=5"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  *string `json:"address,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// UpdateCustomerRequest carries a partial update. Nil fields are untouched.
type UpdateCustomerRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=5"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  *string `json:"address,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// MergeRequest asks to fold the source customers into the target.
type MergeRequest struct {
	TargetID  uuid.UUID   `json:"target_id" validate:"required"`
	SourceIDs []uuid.UUID `json:"source_ids" validate:"required,min=1"`
}

// MergeResult reports what the merge touched.
type MergeResult struct {
	TargetID        uuid.UUID `json:"target_id"`
	MergedCustomers int       `json:"merged_customers"`
	RepointedRows   int64     `json:"repointed_rows"`
}
