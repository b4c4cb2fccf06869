package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/douglasalbuquerque/vision-api/internal/matching"
	"github.com/douglasalbuquerque/vision-api/internal/pricing"
	"github.com/douglasalbuquerque/vision-api/pkg/config"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPricing struct {
	got  pricing.BatchRequest
	resp *pricing.BatchResponse
	err  error
}

func (s *stubPricing) ResolvePrices(_ context.Context, req pricing.BatchRequest) (*pricing.BatchResponse, error) {
	s.got = req
	return s.resp, s.err
}

type stubMatching struct {
	resp *matching.SearchResponse
	err  error
}

func (s *stubMatching) SearchParts(context.Context, matching.SearchRequest) (*matching.SearchResponse, error) {
	return s.resp, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestPricesBatchWritesRawPayload(t *testing.T) {
	svc := &stubPricing{resp: &pricing.BatchResponse{Prices: []pricing.PriceResult{
		{Found: true, InternalCode: "INT-1", CustomerCode: "C-1", UnitPrice: decimal.RequireFromString("9.99"), TotalPrice: decimal.RequireFromString("249.75"), Description: "Decal"},
		{PartCode: "missing", Error: "Part not found"},
	}}}

	rec := post(PricesBatch(svc, logger.Nop()), `{"ERPId":"erp","companyId":3,"items":[{"partCode":"C-1","quantity":25}],"extra":"ignored"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", svc.got.CompanyID.String())
	require.Len(t, svc.got.Items, 1)

	assert.JSONEq(t, `{"prices":[
		{"internalCode":"INT-1","customerCode":"C-1","unit_price":9.99,"total_price":249.75,"description":"Decal"},
		{"partCode":"missing","price":null,"description":null,"error":"Part not found"}
	]}`, rec.Body.String())
}

func TestPricesBatchErrors(t *testing.T) {
	rec := post(PricesBatch(&stubPricing{}, logger.Nop()), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc := &stubPricing{err: pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")}
	rec = post(PricesBatch(svc, logger.Nop()), `{"ERPId":"erp","companyId":"99","items":[]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.JSONEq(t, `{"error":"Customer not found"}`, rec.Body.String())

	rec = post(PricesBatch(nil, logger.Nop()), `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPricesBatchToleratesUnreadableItems(t *testing.T) {
	for _, bad := range []string{`{"partCode":"B","quantity":""}`, `{"partCode":"B","quantity":"ten"}`, `{"partCode":{"x":1},"quantity":2}`} {
		svc := &stubPricing{resp: &pricing.BatchResponse{Prices: []pricing.PriceResult{}}}
		rec := post(PricesBatch(svc, logger.Nop()), `{"ERPId":"e","companyId":7,"items":[{"partCode":"A","quantity":5},`+bad+`]}`)
		require.Equal(t, http.StatusOK, rec.Code, bad)
		require.Len(t, svc.got.Items, 2, bad)
		assert.Equal(t, "A", svc.got.Items[0].PartCode.String())
		assert.True(t, svc.got.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
		second := svc.got.Items[1]
		assert.True(t, second.PartCode.IsZero() || !second.Quantity.IsPositive(), "unreadable item is left skippable: %s", bad)
	}
}

func TestPricesBatchNonArrayItemsReachesService(t *testing.T) {
	svc := &stubPricing{err: pkgerrors.New(pkgerrors.CodeValidation, "Invalid request. Required: ERPId, companyId, and items array")}
	rec := post(PricesBatch(svc, logger.Nop()), `{"ERPId":"e","companyId":7,"items":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got.Items)
	assert.JSONEq(t, `{"error":"Invalid request. Required: ERPId, companyId, and items array"}`, rec.Body.String())
}

func TestPartsSearchWritesRawPayload(t *testing.T) {
	svc := &stubMatching{resp: &matching.SearchResponse{
		SearchParams: matching.SearchParams{ERPId: json.RawMessage(`"erp"`), CompanyID: json.RawMessage(`"3"`), Description: "red decal"},
		TotalResults: 1,
		RelatedCodes: []matching.Candidate{{InternalCode: "INT-1", CustomerCode: "C-1", Description: "red decal", Price: 10, CustomerPrice: 8.5, MatchType: matching.MatchDescription}},
	}}

	rec := post(PartsSearch(svc, logger.Nop()), `{"ERPId":"erp","companyId":"3","description":"red decal"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "data")
	assert.EqualValues(t, 1, body["totalResults"])
	params := body["searchParams"].(map[string]any)
	assert.Nil(t, params["customerPart"])
	assert.Nil(t, params["size"])
}

func TestPartsSearchStorageFailureIsGeneric(t *testing.T) {
	svc := &stubMatching{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("pq: relation missing"), "search parts")}
	rec := post(PartsSearch(svc, logger.Nop()), `{"ERPId":"erp","companyId":"3","description":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	_, isString := body["error"].(string)
	assert.True(t, isString, "ERP errors carry a plain message")
}

func TestHealthEndpoints(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}

	rec := httptest.NewRecorder()
	Health()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.NotEmpty(t, health["timestamp"])

	rec = httptest.NewRecorder()
	HealthReady(cfg, logger.Nop(), stubPinger{}, nil)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	HealthReady(cfg, logger.Nop(), stubPinger{}, stubPinger{err: errors.New("down")})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"unavailable"`)
}
