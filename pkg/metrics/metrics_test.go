package metrics

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe(http.MethodPost, "/api/prices/batch", http.StatusOK, 120*time.Millisecond)
	m.Observe(http.MethodPost, "/api/prices/batch", http.StatusOK, 80*time.Millisecond)
	m.Observe(http.MethodPost, "", http.StatusNotFound, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/prices/batch"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 requests, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil {
		t.Fatalf("fetch unknown route: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 unmatched request, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/prices/batch"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestCatalogMetricsCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)
	m.IncPriceLookup(PriceByCustomerCode)
	m.IncPriceLookup(PriceByCustomerCode)
	m.IncPriceLookup(PriceNotFound)
	m.ObserveSearch([]string{"exact_customer_code", "description_match", "description_match"})

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, _ := fetchCounterValue(mfs, "catalog_price_lookups_total", "outcome", PriceByCustomerCode); got != 2 {
		t.Fatalf("expected 2 customer-code lookups, got %f", got)
	}
	if got, _ := fetchCounterValue(mfs, "catalog_price_lookups_total", "outcome", PriceNotFound); got != 1 {
		t.Fatalf("expected 1 not-found lookup, got %f", got)
	}
	if got, _ := fetchCounterValue(mfs, "catalog_search_matches_total", "match_type", "description_match"); got != 2 {
		t.Fatalf("expected 2 description matches, got %f", got)
	}
	mf := findMetricFamily(mfs, "catalog_search_results")
	if mf == nil || mf.GetMetric()[0].GetHistogram().GetSampleSum() != 3 {
		t.Fatalf("expected one search observation of 3 results")
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewHTTPMetrics(nil).Observe(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	NewCatalogMetrics(nil).IncPriceLookup(PriceNotFound)
	var nilMetrics *CatalogMetrics
	nilMetrics.ObserveSearch([]string{"size_match"})
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, lp := range labels {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}
