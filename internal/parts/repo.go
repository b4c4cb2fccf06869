package parts

import (
	"context"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	"github.com/douglasalbuquerque/vision-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is the parts data-access surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListSubstrates(ctx context.Context) ([]models.Substrate, error)
	ListFinishes(ctx context.Context) ([]models.Finish, error)
	Exists(ctx context.Context, model any, id int64) (bool, error)
	CreatePart(ctx context.Context, part *models.Part) error
	ListParts(ctx context.Context, params pagination.Params) ([]models.Part, string, error)
	FindPart(ctx context.Context, id int64) (*models.Part, error)
	FindMappingsByPart(ctx context.Context, partID int64) ([]models.PartMapping, error)
	UpdateBasePrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error)
	CreateMapping(ctx context.Context, mapping *models.PartMapping) error
	ListCustomerParts(ctx context.Context, customerID int64, customerCode string) ([]CustomerPartRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM connection into the parts repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListSubstrates(ctx context.Context) ([]models.Substrate, error) {
	var rows []models.Substrate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListFinishes(ctx context.Context) ([]models.Finish, error) {
	var rows []models.Finish
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Exists reports whether a row of the given model has the primary key id.
func (r *repository) Exists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreatePart(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Omit("Substrate", "Finish", "Mappings").Create(part).Error
}

// ListParts returns one page of parts, newest first, and the cursor of the
// following page when there is one.
func (r *repository) ListParts(ctx context.Context, params pagination.Params) ([]models.Part, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Preload("Substrate").
		Preload("Finish")
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Part
	if err := qb.Order("created_at DESC").Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

func (r *repository) FindPart(ctx context.Context, id int64) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).
		Preload("Substrate").
		Preload("Finish").
		First(&part, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *repository) FindMappingsByPart(ctx context.Context, partID int64) ([]models.PartMapping, error) {
	var rows []models.PartMapping
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("part_id = ?", partID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateBasePrice reports false when no part has the id.
func (r *repository) UpdateBasePrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("id = ?", id).
		Update("base_price", price)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreateMapping(ctx context.Context, mapping *models.PartMapping) error {
	return r.db.WithContext(ctx).Omit("Part", "Customer").Create(mapping).Error
}

// CustomerPartRow is the flattened mapping, part and lookup names of one customer part.
type CustomerPartRow struct {
	MappingID     int64
	PartID        int64
	InternalCode  string
	CustomerCode  string
	Description   string
	BasePrice     decimal.Decimal
	PriceOverride decimal.NullDecimal
	Substrate     *string
	Finish        *string
}

// ListCustomerParts lists the parts mapped to a customer, optionally narrowed
// to one exact customer code.
func (r *repository) ListCustomerParts(ctx context.Context, customerID int64, customerCode string) ([]CustomerPartRow, error) {
	qb := r.db.WithContext(ctx).
		Table("part_mappings AS pm").
		Select(`pm.id AS mapping_id, p.id AS part_id, p.internal_code, pm.customer_code,
			p.description, p.base_price, pm.price_override,
			s.name AS substrate, f.name AS finish`).
		Joins("JOIN parts AS p ON p.id = pm.part_id").
		Joins("LEFT JOIN substrates AS s ON s.id = p.substrate_id").
		Joins("LEFT JOIN finishes AS f ON f.id = p.finish_id").
		Where("pm.customer_id = ?", customerID)
	if customerCode != "" {
		qb = qb.Where("pm.customer_code = ?", customerCode)
	}

	var rows []CustomerPartRow
	if err := qb.Order("pm.customer_code ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
