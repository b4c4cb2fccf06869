package parts

import (
	"time"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	"github.com/shopspring/decimal"
)

// LookupDTO is an id/name pair from the substrate and finish tables.
type LookupDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreatePartInput is the body of POST /api/parts.
type CreatePartInput struct {
	InternalCode string          `json:"internal_code" validate:"required,max=100"`
	Description  string          `json:"description" validate:"max=2000"`
	BasePrice    decimal.Decimal `json:"base_price"`
	SubstrateID  int64           `json:"substrate_id" validate:"required,gt=0"`
	FinishID     int64           `json:"finish_id" validate:"required,gt=0"`
}

// UpdatePriceInput is the body of PATCH /api/parts/{partId}/price.
type UpdatePriceInput struct {
	BasePrice decimal.Decimal `json:"base_price"`
}

// CreateMappingInput is the body of POST /api/parts/{partId}/mappings.
type CreateMappingInput struct {
	CustomerID    int64               `json:"customer_id" validate:"required,gt=0"`
	CustomerCode  string              `json:"customer_code" validate:"required,max=100"`
	PriceOverride decimal.NullDecimal `json:"price_override"`
}

// PartDTO is a catalog part with its substrate and finish names.
type PartDTO struct {
	ID            int64     `json:"id"`
	InternalCode  string    `json:"internal_code"`
	Description   string    `json:"description"`
	BasePrice     float64   `json:"base_price"`
	SubstrateID   *int64    `json:"substrate_id"`
	FinishID      *int64    `json:"finish_id"`
	SubstrateName *string   `json:"substrate_name"`
	FinishName    *string   `json:"finish_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PartDetailDTO adds the customer mappings of a part.
type PartDetailDTO struct {
	PartDTO
	CustomerMappings []MappingDTO `json:"customer_mappings"`
}

// PartListDTO is one page of parts.
type PartListDTO struct {
	Parts      []PartDTO `json:"parts"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// MappingDTO is a customer code attached to a part.
type MappingDTO struct {
	ID            int64     `json:"id"`
	PartID        int64     `json:"part_id"`
	CustomerID    int64     `json:"customer_id"`
	CustomerCode  string    `json:"customer_code"`
	PriceOverride *float64  `json:"price_override"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomerPartDTO is a part as seen by one customer.
type CustomerPartDTO struct {
	MappingID      int64    `json:"mapping_id"`
	PartID         int64    `json:"part_id"`
	InternalCode   string   `json:"internal_code"`
	CustomerCode   string   `json:"customer_code"`
	Description    string   `json:"description"`
	BasePrice      float64  `json:"base_price"`
	PriceOverride  *float64 `json:"price_override"`
	EffectivePrice float64  `json:"effective_price"`
	Substrate      *string  `json:"substrate"`
	Finish         *string  `json:"finish"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func nullableMoney(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := money(d.Decimal)
	return &v
}

func partFromModel(m *models.Part) PartDTO {
	dto := PartDTO{
		ID:           m.ID,
		InternalCode: m.InternalCode,
		Description:  m.Description,
		BasePrice:    money(m.BasePrice),
		SubstrateID:  m.SubstrateID,
		FinishID:     m.FinishID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Substrate != nil {
		name := m.Substrate.Name
		dto.SubstrateName = &name
	}
	if m.Finish != nil {
		name := m.Finish.Name
		dto.FinishName = &name
	}
	return dto
}

func mappingFromModel(m *models.PartMapping) MappingDTO {
	dto := MappingDTO{
		ID:            m.ID,
		PartID:        m.PartID,
		CustomerID:    m.CustomerID,
		CustomerCode:  m.CustomerCode,
		PriceOverride: nullableMoney(m.PriceOverride),
		CreatedAt:     m.CreatedAt,
	}
	if m.Customer != nil {
		dto.CustomerName = m.Customer.Name
	}
	return dto
}
