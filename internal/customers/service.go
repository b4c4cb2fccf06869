package customers

import (
	"context"
	"fmt"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"gorm.io/gorm"
)

// CustomerDTO is the public view of an ERP customer.
type CustomerDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Repository reads customers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all customers ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type customerLister interface {
	List(ctx context.Context) ([]models.Customer, error)
}

type Service interface {
	List(ctx context.Context) ([]CustomerDTO, error)
}

type service struct {
	repo customerLister
}

func NewService(repo customerLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CustomerDTO{ID: row.ID, Name: row.Name, Email: row.Email, Phone: row.Phone})
	}
	return out, nil
}
