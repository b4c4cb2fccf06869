package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) (*models.Store, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]models.Store, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
}

// Service exposes store operations.
type Service interface {
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]StoreDTO, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	input.StoreNumber = strings.TrimSpace(input.StoreNumber)
	if input.CustomerID <= 0 || input.StoreNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customerId and storeNumber are required")
	}

	exists, err := s.repo.CustomerExists(ctx, input.CustomerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
	}

	created, err := s.repo.Create(ctx, input.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(created), nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID int64) ([]StoreDTO, error) {
	rows, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
