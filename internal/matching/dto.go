package matching

import (
	"bytes"
	"encoding/json"

	"github.com/douglasalbuquerque/vision-api/pkg/types"
	"github.com/shopspring/decimal"
)

// MatchType tags which search strategy produced a candidate.
type MatchType string

const (
	MatchExactCustomerCode MatchType = "exact_customer_code"
	MatchDescription       MatchType = "description_match"
	MatchSize              MatchType = "size_match"
)

// SearchRequest is the body of a part search.
type SearchRequest struct {
	ERPId        types.LooseString `json:"ERPId"`
	CompanyID    types.LooseString `json:"companyId"`
	CustomerPart types.LooseString `json:"customerPart"`
	Description  string            `json:"description"`
	Size         types.LooseString `json:"size"`

	sent sentParams
}

// sentParams holds the JSON tokens as the client sent them.
type sentParams struct {
	ERPId        json.RawMessage `json:"ERPId"`
	CompanyID    json.RawMessage `json:"companyId"`
	CustomerPart json.RawMessage `json:"customerPart"`
	Size         json.RawMessage `json:"size"`
}

// UnmarshalJSON decodes the request and remembers the original tokens so
// searchParams can echo numbers as numbers.
func (r *SearchRequest) UnmarshalJSON(data []byte) error {
	type fields SearchRequest
	var decoded fields
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var sent sentParams
	if err := json.Unmarshal(data, &sent); err != nil {
		return err
	}
	*r = SearchRequest(decoded)
	r.sent = sent
	return nil
}

// SearchParams echoes the request; absent hints are null.
type SearchParams struct {
	ERPId        json.RawMessage `json:"ERPId"`
	CompanyID    json.RawMessage `json:"companyId"`
	CustomerPart json.RawMessage `json:"customerPart"`
	Description  string          `json:"description"`
	Size         json.RawMessage `json:"size"`
}

// SearchResponse is the un-enveloped payload returned to ERP clients.
type SearchResponse struct {
	SearchParams SearchParams `json:"searchParams"`
	TotalResults int          `json:"totalResults"`
	RelatedCodes []Candidate  `json:"relatedCodes"`
}

// Candidate is one related part, with prices rounded to two decimals.
type Candidate struct {
	InternalCode  string    `json:"internalCode"`
	CustomerCode  string    `json:"customerCode"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	CustomerPrice float64   `json:"customerPrice"`
	MatchType     MatchType `json:"matchType"`
}

func roundedPrice(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// echo returns the token as sent, or the decoded text as a JSON string for
// requests built in code.
func echo(sent json.RawMessage, v types.LooseString) json.RawMessage {
	if sent = bytes.TrimSpace(sent); len(sent) > 0 {
		return sent
	}
	b, _ := json.Marshal(v.String())
	return b
}

// echoOptional is null for absent or blank hints.
func echoOptional(sent json.RawMessage, v types.LooseString) json.RawMessage {
	if v.IsZero() {
		return nil
	}
	return echo(sent, v)
}
