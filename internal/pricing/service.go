package pricing

import (
	"context"
	"fmt"

	"github.com/douglasalbuquerque/vision-api/internal/catalog"
	"github.com/douglasalbuquerque/vision-api/pkg/db"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

var (
	tierSize        = decimal.NewFromInt(10)
	discountPerTier = decimal.RequireFromString("0.0001")
	one             = decimal.NewFromInt(1)
)

// Service resolves batch price lookups for ERP clients.
type Service interface {
	ResolvePrices(ctx context.Context, req BatchRequest) (*BatchResponse, error)
}

type service struct {
	store   catalog.Store
	metrics *metrics.CatalogMetrics
}

// NewService builds the price resolver. catalogMetrics may be nil.
func NewService(store catalog.Store, catalogMetrics *metrics.CatalogMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	return &service{store: store, metrics: catalogMetrics}, nil
}

// ResolvePrices prices each item for the customer identified by companyId.
// Items with an empty part code or non-positive quantity are skipped; items
// that resolve to no part produce an inline "Part not found" entry.
func (s *service) ResolvePrices(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if req.ERPId.IsZero() || req.CompanyID.IsZero() || req.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid request. Required: ERPId, companyId, and items array")
	}

	customerID, err := catalog.ResolveCustomer(ctx, s.store, req.CompanyID)
	if err != nil {
		return nil, err
	}

	prices := make([]PriceResult, 0, len(req.Items))
	for _, item := range req.Items {
		if item.PartCode.IsZero() || !item.Quantity.IsPositive() {
			continue
		}
		code := item.PartCode.String()

		match, outcome, err := s.resolve(ctx, customerID, code)
		if err != nil {
			return nil, err
		}
		s.metrics.IncPriceLookup(outcome)

		if match == nil {
			prices = append(prices, PriceResult{PartCode: code, Error: partNotFoundMessage})
			continue
		}

		unit := ApplyQuantityDiscount(match.price, item.Quantity).Round(2)
		prices = append(prices, PriceResult{
			Found:        true,
			InternalCode: match.InternalCode,
			CustomerCode: match.CustomerCode,
			UnitPrice:    unit,
			TotalPrice:   unit.Mul(item.Quantity),
			Description:  match.Description,
		})
	}

	return &BatchResponse{Prices: prices}, nil
}

type pricedMatch struct {
	catalog.MappingMatch
	price decimal.Decimal
}

// resolve tries the customer's own code first, then the internal code. The
// internal-code path prices at base_price and ignores any override.
func (s *service) resolve(ctx context.Context, customerID int64, code string) (*pricedMatch, string, error) {
	byCustomer, err := s.store.GetPartMappingByCustomerCode(ctx, customerID, code)
	switch {
	case err == nil:
		return &pricedMatch{MappingMatch: *byCustomer, price: byCustomer.EffectivePrice()}, metrics.PriceByCustomerCode, nil
	case !db.IsNotFound(err):
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup part by customer code")
	}

	byInternal, err := s.store.GetPartByInternalCodeForCustomer(ctx, code, customerID)
	switch {
	case err == nil:
		return &pricedMatch{MappingMatch: *byInternal, price: byInternal.BasePrice}, metrics.PriceByInternalCode, nil
	case !db.IsNotFound(err):
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup part by internal code")
	}

	return nil, metrics.PriceNotFound, nil
}

// ApplyQuantityDiscount takes 0.01% off per full ten units ordered, with no cap.
func ApplyQuantityDiscount(price, quantity decimal.Decimal) decimal.Decimal {
	tiers := quantity.Div(tierSize).Floor()
	if !tiers.IsPositive() {
		return price
	}
	return price.Mul(one.Sub(tiers.Mul(discountPerTier)))
}
