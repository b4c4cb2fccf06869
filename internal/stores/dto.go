package stores

import (
	"time"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
)

// CreateStoreInput is the body of POST /api/stores.
type CreateStoreInput struct {
	CustomerID   int64   `json:"customerId" validate:"required,gt=0"`
	StoreNumber  string  `json:"storeNumber" validate:"required"`
	FirstName    *string `json:"firstName" validate:"omitempty,max=100"`
	LastName     *string `json:"lastName" validate:"omitempty,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	CompanyName  *string `json:"companyName" validate:"omitempty,max=200"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	Country      *string `json:"country"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	LookupHint   *string `json:"lookupHint"`
}

// ToModel maps the input onto a new store row.
func (in CreateStoreInput) ToModel() *models.Store {
	return &models.Store{
		CustomerID:   in.CustomerID,
		StoreNumber:  in.StoreNumber,
		CompanyName:  in.CompanyName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		Country:      in.Country,
		City:         in.City,
		State:        in.State,
		LookupHint:   in.LookupHint,
	}
}

// StoreDTO exposes a store in API responses.
type StoreDTO struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	StoreNumber  string    `json:"store_number"`
	CompanyName  *string   `json:"company_name"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Email        *string   `json:"email"`
	AddressLine1 *string   `json:"address_line1"`
	AddressLine2 *string   `json:"address_line2"`
	Country      *string   `json:"country"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	LookupHint   *string   `json:"lookup_hint"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		StoreNumber:  m.StoreNumber,
		CompanyName:  m.CompanyName,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		Country:      m.Country,
		City:         m.City,
		State:        m.State,
		LookupHint:   m.LookupHint,
		CreatedAt:    m.CreatedAt,
	}
}
