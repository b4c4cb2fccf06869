package catalog

import (
	"context"
	"strings"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const mappingColumns = "p.id AS part_id, p.internal_code, pm.customer_code, p.description, p.base_price, pm.price_override"

// MappingMatch is a customer's mapping joined with the part it points at.
type MappingMatch struct {
	PartID        int64
	InternalCode  string
	CustomerCode  string
	Description   string
	BasePrice     decimal.Decimal
	PriceOverride decimal.NullDecimal
}

// EffectivePrice is the customer override when present, else the base price.
func (m MappingMatch) EffectivePrice() decimal.Decimal {
	return models.EffectivePrice(m.BasePrice, m.PriceOverride)
}

// Store is the read surface the price resolver and part matcher depend on.
// Point lookups return gorm.ErrRecordNotFound when nothing matches.
type Store interface {
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	GetPartMappingByCustomerCode(ctx context.Context, customerID int64, code string) (*MappingMatch, error)
	GetPartByInternalCodeForCustomer(ctx context.Context, internalCode string, customerID int64) (*MappingMatch, error)
	SearchMappingsByDescriptionTokens(ctx context.Context, customerID int64, tokens []string, excludeCode string, limit int) ([]MappingMatch, error)
	SearchMappingsBySizeSubstring(ctx context.Context, customerID int64, size, excludeCode string, limit int) ([]MappingMatch, error)
}

// Repository implements Store over GORM for Postgres and SQLite.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetPartMappingByCustomerCode resolves a customer's own code through its mapping.
func (r *Repository) GetPartMappingByCustomerCode(ctx context.Context, customerID int64, code string) (*MappingMatch, error) {
	return r.first(r.mappings(ctx).
		Where("pm.customer_id = ? AND pm.customer_code = ?", customerID, code))
}

// GetPartByInternalCodeForCustomer finds a part by internal code, but only
// when the customer has at least one mapping to it. The earliest mapping
// supplies the customer code.
func (r *Repository) GetPartByInternalCodeForCustomer(ctx context.Context, internalCode string, customerID int64) (*MappingMatch, error) {
	return r.first(r.mappings(ctx).
		Where("p.internal_code = ? AND pm.customer_id = ?", internalCode, customerID).
		Order("pm.id ASC"))
}

// SearchMappingsByDescriptionTokens returns the customer's mappings whose part
// description contains every token (case-sensitive), shortest description first.
func (r *Repository) SearchMappingsByDescriptionTokens(ctx context.Context, customerID int64, tokens []string, excludeCode string, limit int) ([]MappingMatch, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	q := r.mappings(ctx).Where("pm.customer_id = ?", customerID)
	contains := r.containsPredicate()
	for _, token := range tokens {
		q = q.Where(contains, token)
	}
	if excludeCode != "" {
		q = q.Where("pm.customer_code <> ?", excludeCode)
	}

	var rows []MappingMatch
	err := q.Order("LENGTH(p.description) ASC").
		Order("p.internal_code ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// SearchMappingsBySizeSubstring returns the customer's mappings whose part
// description contains size, ordered by internal code.
func (r *Repository) SearchMappingsBySizeSubstring(ctx context.Context, customerID int64, size, excludeCode string, limit int) ([]MappingMatch, error) {
	q := r.mappings(ctx).
		Where("pm.customer_id = ?", customerID).
		Where(r.containsPredicate(), size)
	if excludeCode != "" {
		q = q.Where("pm.customer_code <> ?", excludeCode)
	}

	var rows []MappingMatch
	err := q.Order("p.internal_code ASC").Limit(limit).Scan(&rows).Error
	return rows, err
}

func (r *Repository) mappings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("part_mappings AS pm").
		Select(mappingColumns).
		Joins("JOIN parts AS p ON p.id = pm.part_id")
}

func (r *Repository) first(q *gorm.DB) (*MappingMatch, error) {
	var row MappingMatch
	res := q.Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// containsPredicate is a literal, case-sensitive substring test on the part
// description. LIKE would fold ASCII case on SQLite and treat % and _ as wildcards.
func (r *Repository) containsPredicate() string {
	if strings.EqualFold(r.db.Dialector.Name(), "sqlite") {
		return "instr(p.description, ?) > 0"
	}
	return "strpos(p.description, ?) > 0"
}
