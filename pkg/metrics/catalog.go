package metrics

import "github.com/prometheus/client_golang/prometheus"

// Price lookup outcomes.
const (
	PriceByCustomerCode = "customer_code"
	PriceByInternalCode = "internal_code"
	PriceNotFound       = "not_found"
)

// CatalogMetrics tracks how batch price lookups and part searches resolve.
type CatalogMetrics struct {
	priceLookups  *prometheus.CounterVec
	searchMatches *prometheus.CounterVec
	searchResults prometheus.Histogram
}

// NewCatalogMetrics registers the catalog metrics on reg. A nil registerer
// yields a no-op recorder.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	priceLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_price_lookups_total",
		Help: "Batch price items by resolution outcome.",
	}, []string{"outcome"})
	searchMatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_search_matches_total",
		Help: "Part search candidates returned, by match type.",
	}, []string{"match_type"})
	searchResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_search_results",
		Help:    "Number of related codes returned per part search.",
		Buckets: []float64{0, 1, 2, 5, 10, 15},
	})
	reg.MustRegister(priceLookups, searchMatches, searchResults)
	return &CatalogMetrics{
		priceLookups:  priceLookups,
		searchMatches: searchMatches,
		searchResults: searchResults,
	}
}

// IncPriceLookup counts one resolved (or unresolved) batch item.
func (c *CatalogMetrics) IncPriceLookup(outcome string) {
	if c == nil || c.priceLookups == nil {
		return
	}
	c.priceLookups.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveSearch records the match types of one search response.
func (c *CatalogMetrics) ObserveSearch(matchTypes []string) {
	if c == nil || c.searchMatches == nil {
		return
	}
	for _, mt := range matchTypes {
		c.searchMatches.WithLabelValues(normalizeLabel(mt)).Inc()
	}
	c.searchResults.Observe(float64(len(matchTypes)))
}
