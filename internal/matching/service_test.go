package matching

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/douglasalbuquerque/vision-api/internal/catalog"
	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type searchCall struct {
	tokens  []string
	size    string
	exclude string
	limit   int
}

type stubStore struct {
	exact       map[string]catalog.MappingMatch
	description []catalog.MappingMatch
	size        []catalog.MappingMatch
	searchErr   error

	calls     int
	descCalls []searchCall
	sizeCalls []searchCall
}

func (s *stubStore) GetCustomer(_ context.Context, id int64) (*models.Customer, error) {
	s.calls++
	if id != 7 {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Customer{ID: id}, nil
}

func (s *stubStore) GetPartMappingByCustomerCode(_ context.Context, _ int64, code string) (*catalog.MappingMatch, error) {
	s.calls++
	if m, ok := s.exact[code]; ok {
		return &m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStore) GetPartByInternalCodeForCustomer(context.Context, string, int64) (*catalog.MappingMatch, error) {
	s.calls++
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStore) SearchMappingsByDescriptionTokens(_ context.Context, _ int64, tokens []string, exclude string, limit int) ([]catalog.MappingMatch, error) {
	s.calls++
	s.descCalls = append(s.descCalls, searchCall{tokens: tokens, exclude: exclude, limit: limit})
	return s.description, s.searchErr
}

func (s *stubStore) SearchMappingsBySizeSubstring(_ context.Context, _ int64, size, exclude string, limit int) ([]catalog.MappingMatch, error) {
	s.calls++
	s.sizeCalls = append(s.sizeCalls, searchCall{size: size, exclude: exclude, limit: limit})
	return s.size, nil
}

func row(code, desc, base string) catalog.MappingMatch {
	return catalog.MappingMatch{
		InternalCode: code,
		CustomerCode: "C-" + code,
		Description:  desc,
		BasePrice:    decimal.RequireFromString(base),
	}
}

func matchTypes(cs []Candidate) []MatchType {
	out := make([]MatchType, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.MatchType)
	}
	return out
}

func codes(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.InternalCode)
	}
	return out
}

func TestSearchPartsDescriptionThenSizeScenario(t *testing.T) {
	stub := &stubStore{
		description: []catalog.MappingMatch{
			row("INT-1", "red widget 10mm", "1"),
			row("INT-2", "red widget 10mm x", "2"),
			row("INT-3", "red widget 10mm xl", "3"),
		},
		size: []catalog.MappingMatch{
			row("INT-1", "red widget 10mm", "1"),
			row("INT-2", "red widget 10mm x", "2"),
			row("INT-3", "red widget 10mm xl", "3"),
			row("INT-4", "bolt 10mm", "4"),
			row("INT-5", "nut 10mm", "5"),
		},
	}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	resp, err := svc.SearchParts(context.Background(), SearchRequest{
		ERPId: "erp", CompanyID: "7", Description: "red widget", Size: "10mm",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalResults)
	assert.Equal(t, []string{"INT-1", "INT-2", "INT-3", "INT-4", "INT-5"}, codes(resp.RelatedCodes))
	assert.Equal(t, []MatchType{MatchDescription, MatchDescription, MatchDescription, MatchSize, MatchSize}, matchTypes(resp.RelatedCodes))

	require.Len(t, stub.descCalls, 1)
	assert.Equal(t, []string{"red", "widget"}, stub.descCalls[0].tokens)
	assert.Equal(t, 10, stub.descCalls[0].limit)
	require.Len(t, stub.sizeCalls, 1)
	assert.Equal(t, "10mm", stub.sizeCalls[0].size)
	assert.Equal(t, 5, stub.sizeCalls[0].limit)
}

func TestSearchPartsExactWinsOverDescriptionDuplicate(t *testing.T) {
	exact := row("INT-1", "red widget", "9.99")
	exact.CustomerCode = "ACME-1"
	exact.PriceOverride = decimal.NewNullDecimal(decimal.RequireFromString("8.505"))
	stub := &stubStore{
		exact:       map[string]catalog.MappingMatch{"ACME-1": exact},
		description: []catalog.MappingMatch{row("INT-1", "red widget", "9.99"), row("INT-2", "red widget big", "1")},
	}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	resp, err := svc.SearchParts(context.Background(), SearchRequest{
		ERPId: "erp", CompanyID: "7", CustomerPart: "ACME-1", Description: "red widget",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"INT-1", "INT-2"}, codes(resp.RelatedCodes))
	assert.Equal(t, MatchExactCustomerCode, resp.RelatedCodes[0].MatchType)
	assert.Equal(t, 9.99, resp.RelatedCodes[0].Price)
	assert.Equal(t, 8.51, resp.RelatedCodes[0].CustomerPrice)
	assert.Equal(t, "ACME-1", stub.descCalls[0].exclude, "customer part is excluded from description search")
	assert.Empty(t, stub.sizeCalls, "no size hint, no size search")
}

func TestSearchPartsSkipsSizeWhenFiveRawCandidates(t *testing.T) {
	stub := &stubStore{
		exact: map[string]catalog.MappingMatch{"ACME-1": row("INT-1", "a", "1")},
		description: []catalog.MappingMatch{
			row("INT-1", "a", "1"),
			row("INT-2", "b", "1"),
			row("INT-3", "c", "1"),
			row("INT-4", "d", "1"),
		},
		size: []catalog.MappingMatch{row("INT-9", "z", "1")},
	}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	resp, err := svc.SearchParts(context.Background(), SearchRequest{
		ERPId: "erp", CompanyID: "7", CustomerPart: "ACME-1", Description: "abc def", Size: "10mm",
	})
	require.NoError(t, err)
	assert.Empty(t, stub.sizeCalls, "five raw candidates, duplicate included, suppress size matching")
	assert.Equal(t, 4, resp.TotalResults)
}

func TestSearchPartsShortTokensSkipDescriptionStrategy(t *testing.T) {
	stub := &stubStore{size: []catalog.MappingMatch{row("INT-7", "m8 bolt", "1")}}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	resp, err := svc.SearchParts(context.Background(), SearchRequest{
		ERPId: "erp", CompanyID: "7", Description: "m8 xx", Size: "m8",
	})
	require.NoError(t, err)
	assert.Empty(t, stub.descCalls)
	assert.Equal(t, []MatchType{MatchSize}, matchTypes(resp.RelatedCodes))
}

func TestSearchPartsValidationNeverTouchesStorage(t *testing.T) {
	stub := &stubStore{}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	for _, req := range []SearchRequest{
		{ERPId: "erp", CompanyID: "7", Description: "   \t "},
		{ERPId: "erp", CompanyID: "7"},
		{CompanyID: "7", Description: "red widget"},
		{ERPId: "erp", Description: "red widget"},
	} {
		_, err := svc.SearchParts(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
	assert.Zero(t, stub.calls)
}

func TestSearchPartsUnknownCustomer(t *testing.T) {
	stub := &stubStore{}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	_, err = svc.SearchParts(context.Background(), SearchRequest{ERPId: "erp", CompanyID: "8", Description: "red widget"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	assert.Empty(t, stub.descCalls, "no partial search for unknown customers")
}

func TestSearchPartsStorageFailure(t *testing.T) {
	stub := &stubStore{searchErr: errors.New("timeout")}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	_, err = svc.SearchParts(context.Background(), SearchRequest{ERPId: "erp", CompanyID: "7", Description: "red widget"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestSearchResponseJSON(t *testing.T) {
	reg := prometheus.NewRegistry()
	stub := &stubStore{description: []catalog.MappingMatch{row("INT-1", "red widget", "9.999")}}
	svc, err := NewService(stub, metrics.NewCatalogMetrics(reg))
	require.NoError(t, err)

	resp, err := svc.SearchParts(context.Background(), SearchRequest{ERPId: "erp", CompanyID: "7", Description: " red widget "})
	require.NoError(t, err)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"searchParams": {"ERPId":"erp","companyId":"7","customerPart":null,"description":" red widget ","size":null},
		"totalResults": 1,
		"relatedCodes": [{"internalCode":"INT-1","customerCode":"C-INT-1","description":"red widget","price":10,"customerPrice":10,"matchType":"description_match"}]
	}`, string(body))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs, "search outcome is recorded")
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"red", "widget", "10mm"}, Tokenize("  red\twidget  of 10mm x "))
	assert.Empty(t, Tokenize("a bb"))
	assert.Equal(t, []string{"ñoñ"}, Tokenize("ñoñ ño"), "length counts characters, not bytes")
}

func TestSearchPartsEchoesParamsAsSent(t *testing.T) {
	stub := &stubStore{}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	var req SearchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ERPId":12,"companyId":7,"customerPart":" ACME-1 ","description":"red widget","size":" 10mm"}`), &req))

	resp, err := svc.SearchParts(context.Background(), req)
	require.NoError(t, err)

	params, err := json.Marshal(resp.SearchParams)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ERPId":12,"companyId":7,"customerPart":" ACME-1 ","description":"red widget","size":" 10mm"}`, string(params))

	require.Len(t, stub.descCalls, 1)
	assert.Equal(t, " ACME-1 ", stub.descCalls[0].exclude, "customer part is excluded as sent")
	require.Len(t, stub.sizeCalls, 1)
	assert.Equal(t, " 10mm", stub.sizeCalls[0].size)
}

func TestSearchPartsBlankHintsAreAbsent(t *testing.T) {
	stub := &stubStore{}
	svc, err := NewService(stub, nil)
	require.NoError(t, err)

	var req SearchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ERPId":"erp","companyId":"7","customerPart":"  ","description":"red widget","size":""}`), &req))

	resp, err := svc.SearchParts(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.SearchParams.CustomerPart)
	assert.Nil(t, resp.SearchParams.Size)
	assert.Empty(t, stub.sizeCalls)
	require.Len(t, stub.descCalls, 1)
	assert.Empty(t, stub.descCalls[0].exclude)

	params, err := json.Marshal(resp.SearchParams)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ERPId":"erp","companyId":"7","customerPart":null,"description":"red widget","size":null}`, string(params))
}
