package parts

import (
	"context"
	"fmt"
	"strings"

	"github.com/douglasalbuquerque/vision-api/pkg/db"
	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	partCodeConstraint    = "parts_internal_code_key"
	mappingCodeConstraint = "part_mappings_customer_code_key"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes catalog maintenance operations.
type Service interface {
	ListSubstrates(ctx context.Context) ([]LookupDTO, error)
	ListFinishes(ctx context.Context) ([]LookupDTO, error)
	CreatePart(ctx context.Context, input CreatePartInput) (*PartDTO, error)
	ListParts(ctx context.Context, params pagination.Params) (*PartListDTO, error)
	GetPart(ctx context.Context, id int64) (*PartDetailDTO, error)
	UpdatePrice(ctx context.Context, id int64, input UpdatePriceInput) (*PartDTO, error)
	CreateMapping(ctx context.Context, partID int64, input CreateMappingInput) (*MappingDTO, error)
	ListCustomerParts(ctx context.Context, customerID int64, customerCode string) ([]CustomerPartDTO, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the parts service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListSubstrates(ctx context.Context) ([]LookupDTO, error) {
	rows, err := s.repo.ListSubstrates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list substrates")
	}
	out := make([]LookupDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, LookupDTO{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (s *service) ListFinishes(ctx context.Context) ([]LookupDTO, error) {
	rows, err := s.repo.ListFinishes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list finishes")
	}
	out := make([]LookupDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, LookupDTO{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (s *service) CreatePart(ctx context.Context, input CreatePartInput) (*PartDTO, error) {
	input.InternalCode = strings.TrimSpace(input.InternalCode)
	if input.InternalCode == "" || input.SubstrateID <= 0 || input.FinishID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "internal_code, base_price, substrate_id and finish_id are required")
	}
	if !input.BasePrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be greater than 0")
	}

	part := &models.Part{
		InternalCode: input.InternalCode,
		Description:  strings.TrimSpace(input.Description),
		BasePrice:    input.BasePrice.Round(2),
		SubstrateID:  &input.SubstrateID,
		FinishID:     &input.FinishID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.requireExists(ctx, repo, &models.Substrate{}, input.SubstrateID, "Substrate not found"); err != nil {
			return err
		}
		if err := s.requireExists(ctx, repo, &models.Finish{}, input.FinishID, "Finish not found"); err != nil {
			return err
		}
		if err := repo.CreatePart(ctx, part); err != nil {
			if db.IsUniqueViolation(err, partCodeConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "Part with this internal code already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindPart(ctx, part.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload part")
	}
	dto := partFromModel(created)
	return &dto, nil
}

func (s *service) ListParts(ctx context.Context, params pagination.Params) (*PartListDTO, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListParts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parts")
	}
	out := make([]PartDTO, 0, len(rows))
	for i := range rows {
		out = append(out, partFromModel(&rows[i]))
	}
	return &PartListDTO{Parts: out, NextCursor: next}, nil
}

func (s *service) GetPart(ctx context.Context, id int64) (*PartDetailDTO, error) {
	part, err := s.repo.FindPart(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Part not found", "load part")
	}
	mappings, err := s.repo.FindMappingsByPart(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load part mappings")
	}

	detail := &PartDetailDTO{
		PartDTO:          partFromModel(part),
		CustomerMappings: make([]MappingDTO, 0, len(mappings)),
	}
	for i := range mappings {
		detail.CustomerMappings = append(detail.CustomerMappings, mappingFromModel(&mappings[i]))
	}
	return detail, nil
}

func (s *service) UpdatePrice(ctx context.Context, id int64, input UpdatePriceInput) (*PartDTO, error) {
	if !input.BasePrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be greater than 0")
	}
	updated, err := s.repo.UpdateBasePrice(ctx, id, input.BasePrice.Round(2))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update part price")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Part not found")
	}

	part, err := s.repo.FindPart(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Part not found", "reload part")
	}
	dto := partFromModel(part)
	return &dto, nil
}

func (s *service) CreateMapping(ctx context.Context, partID int64, input CreateMappingInput) (*MappingDTO, error) {
	input.CustomerCode = strings.TrimSpace(input.CustomerCode)
	if input.CustomerID <= 0 || input.CustomerCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id and customer_code are required")
	}
	if input.PriceOverride.Valid && input.PriceOverride.Decimal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_override must not be negative")
	}

	mapping := &models.PartMapping{
		PartID:       partID,
		CustomerID:   input.CustomerID,
		CustomerCode: input.CustomerCode,
	}
	if input.PriceOverride.Valid {
		mapping.PriceOverride = decimal.NewNullDecimal(input.PriceOverride.Decimal.Round(2))
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.requireExists(ctx, repo, &models.Part{}, partID, "Part not found"); err != nil {
			return err
		}
		if err := s.requireExists(ctx, repo, &models.Customer{}, input.CustomerID, "Customer not found"); err != nil {
			return err
		}
		if err := repo.CreateMapping(ctx, mapping); err != nil {
			if db.IsUniqueViolation(err, mappingCodeConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "Customer code already mapped for this customer")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part mapping")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := mappingFromModel(mapping)
	return &dto, nil
}

func (s *service) ListCustomerParts(ctx context.Context, customerID int64, customerCode string) ([]CustomerPartDTO, error) {
	customerCode = strings.TrimSpace(customerCode)
	rows, err := s.repo.ListCustomerParts(ctx, customerID, customerCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer parts")
	}
	if customerCode != "" && len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Part not found for this customer code")
	}

	out := make([]CustomerPartDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CustomerPartDTO{
			MappingID:      row.MappingID,
			PartID:         row.PartID,
			InternalCode:   row.InternalCode,
			CustomerCode:   row.CustomerCode,
			Description:    row.Description,
			BasePrice:      money(row.BasePrice),
			PriceOverride:  nullableMoney(row.PriceOverride),
			EffectivePrice: money(models.EffectivePrice(row.BasePrice, row.PriceOverride)),
			Substrate:      row.Substrate,
			Finish:         row.Finish,
		})
	}
	return out, nil
}

func (s *service) requireExists(ctx context.Context, repo Repository, model any, id int64, notFound string) error {
	ok, err := repo.Exists(ctx, model, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup reference")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return nil
}

func notFoundOr(err error, notFound, action string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
