package matching

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/douglasalbuquerque/vision-api/internal/catalog"
	"github.com/douglasalbuquerque/vision-api/pkg/db"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/metrics"
)

const (
	minTokenLength = 3

	descriptionLimit = 10
	sizeLimit        = 5

	// size matching only fills in when fewer candidates than this were found
	sizeFillThreshold = 5
)

// Service reconciles customer part references against the catalog.
type Service interface {
	SearchParts(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

type service struct {
	store   catalog.Store
	metrics *metrics.CatalogMetrics
}

// NewService builds the part matcher. catalogMetrics may be nil.
func NewService(store catalog.Store, catalogMetrics *metrics.CatalogMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	return &service{store: store, metrics: catalogMetrics}, nil
}

// SearchParts runs the exact customer code, description token and size
// strategies in that order and returns the merged, de-duplicated candidates.
func (s *service) SearchParts(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.ERPId.IsZero() || req.CompanyID.IsZero() || strings.TrimSpace(req.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid request. Required: ERPId, companyId, and description")
	}

	customerID, err := catalog.ResolveCustomer(ctx, s.store, req.CompanyID)
	if err != nil {
		return nil, err
	}

	// hints are used exactly as sent; blank ones count as absent
	var customerPart string
	if !req.CustomerPart.IsZero() {
		customerPart = req.CustomerPart.String()
	}
	var found []candidate

	if customerPart != "" {
		exact, err := s.store.GetPartMappingByCustomerCode(ctx, customerID, customerPart)
		switch {
		case err == nil:
			found = append(found, candidate{*exact, MatchExactCustomerCode})
		case !db.IsNotFound(err):
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "exact customer code match")
		}
	}

	if tokens := Tokenize(req.Description); len(tokens) > 0 {
		rows, err := s.store.SearchMappingsByDescriptionTokens(ctx, customerID, tokens, customerPart, descriptionLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "description token match")
		}
		found = appendAll(found, rows, MatchDescription)
	}

	// the threshold counts raw candidates, duplicates included
	if !req.Size.IsZero() && len(found) < sizeFillThreshold {
		rows, err := s.store.SearchMappingsBySizeSubstring(ctx, customerID, req.Size.String(), customerPart, sizeLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "size match")
		}
		found = appendAll(found, rows, MatchSize)
	}

	related := dedupe(found)
	s.observe(related)

	return &SearchResponse{
		SearchParams: SearchParams{
			ERPId:        echo(req.sent.ERPId, req.ERPId),
			CompanyID:    echo(req.sent.CompanyID, req.CompanyID),
			CustomerPart: echoOptional(req.sent.CustomerPart, req.CustomerPart),
			Description:  req.Description,
			Size:         echoOptional(req.sent.Size, req.Size),
		},
		TotalResults: len(related),
		RelatedCodes: related,
	}, nil
}

// Tokenize splits on whitespace and keeps tokens longer than two characters.
func Tokenize(description string) []string {
	var tokens []string
	for _, field := range strings.Fields(description) {
		if utf8.RuneCountInString(field) >= minTokenLength {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

type candidate struct {
	catalog.MappingMatch
	matchType MatchType
}

func appendAll(dst []candidate, rows []catalog.MappingMatch, mt MatchType) []candidate {
	for _, row := range rows {
		dst = append(dst, candidate{row, mt})
	}
	return dst
}

// dedupe keeps the first candidate seen for each internal code.
func dedupe(found []candidate) []Candidate {
	seen := make(map[string]struct{}, len(found))
	out := make([]Candidate, 0, len(found))
	for _, c := range found {
		if _, dup := seen[c.InternalCode]; dup {
			continue
		}
		seen[c.InternalCode] = struct{}{}
		out = append(out, Candidate{
			InternalCode:  c.InternalCode,
			CustomerCode:  c.CustomerCode,
			Description:   c.Description,
			Price:         roundedPrice(c.BasePrice),
			CustomerPrice: roundedPrice(c.EffectivePrice()),
			MatchType:     c.matchType,
		})
	}
	return out
}

func (s *service) observe(related []Candidate) {
	matchTypes := make([]string, 0, len(related))
	for _, c := range related {
		matchTypes = append(matchTypes, string(c.MatchType))
	}
	s.metrics.ObserveSearch(matchTypes)
}
