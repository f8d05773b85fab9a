package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an address-book entry. Orders snapshot the contact
// fields at creation, so deleting a customer never touches history.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertCustomerRequest is the payload for create and update.
type UpsertCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
