package pricing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/douglasalbuquerque/vision-api/pkg/types"
	"github.com/shopspring/decimal"
)

const partNotFoundMessage = "Part not found"

// BatchRequest is the body of a batch price lookup.
type BatchRequest struct {
	ERPId     types.LooseString `json:"ERPId"`
	CompanyID types.LooseString `json:"companyId"`
	Items     []Item            `json:"items"`
}

// UnmarshalJSON keeps a non-array items value as nil so the resolver reports
// the missing items array instead of a body decode failure.
func (r *BatchRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ERPId     types.LooseString `json:"ERPId"`
		CompanyID types.LooseString `json:"companyId"`
		Items     json.RawMessage   `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = BatchRequest{ERPId: raw.ERPId, CompanyID: raw.CompanyID}
	if items := bytes.TrimSpace(raw.Items); len(items) > 0 && items[0] == '[' {
		return json.Unmarshal(items, &r.Items)
	}
	return nil
}

// Item is one requested (partCode, quantity) pair. Quantity may be fractional.
type Item struct {
	PartCode types.LooseString `json:"partCode"`
	Quantity decimal.Decimal   `json:"quantity"`
}

// UnmarshalJSON never fails. A part code or quantity that cannot be read is
// left zero, and the resolver skips the item instead of rejecting the batch.
func (it *Item) UnmarshalJSON(data []byte) error {
	*it = Item{}

	var raw struct {
		PartCode json.RawMessage `json:"partCode"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if len(raw.PartCode) > 0 {
		var code types.LooseString
		if err := json.Unmarshal(raw.PartCode, &code); err == nil {
			it.PartCode = code
		}
	}
	it.Quantity = parseQuantity(raw.Quantity)
	return nil
}

// parseQuantity reads a JSON number or numeric string; anything else is zero.
func parseQuantity(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero
		}
		text = strings.TrimSpace(text)
	}
	q, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return q
}

// BatchResponse is the un-enveloped payload returned to ERP clients.
type BatchResponse struct {
	Prices []PriceResult `json:"prices"`
}

// PriceResult is either a resolved quote or a per-item miss.
type PriceResult struct {
	Found        bool
	PartCode     string
	InternalCode string
	CustomerCode string
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	Description  string
	Error        string
}

type quoteJSON struct {
	InternalCode string  `json:"internalCode"`
	CustomerCode string  `json:"customerCode"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
	Description  string  `json:"description"`
}

type missJSON struct {
	PartCode    string   `json:"partCode"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Error       string   `json:"error"`
}

// MarshalJSON writes the quote shape for resolved items and the
// {partCode, price:null, description:null, error} shape for misses.
func (r PriceResult) MarshalJSON() ([]byte, error) {
	if !r.Found {
		return json.Marshal(missJSON{PartCode: r.PartCode, Error: r.Error})
	}
	return json.Marshal(quoteJSON{
		InternalCode: r.InternalCode,
		CustomerCode: r.CustomerCode,
		UnitPrice:    r.UnitPrice.InexactFloat64(),
		TotalPrice:   r.TotalPrice.InexactFloat64(),
		Description:  r.Description,
	})
}
