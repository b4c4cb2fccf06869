package orders

import (
	"context"
	"fmt"

	"github.com/douglasalbuquerque/vision-api/pkg/db"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
)

// Service exposes read-only order history.
type Service interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]OrderSummaryDTO, error)
	Get(ctx context.Context, orderID int64) (*OrderDetailDTO, error)
	ListOrderStatuses(ctx context.Context) ([]StatusDTO, error)
	ListPartStatuses(ctx context.Context) ([]StatusDTO, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID int64) ([]OrderSummaryDTO, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer orders")
	}
	out := make([]OrderSummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, OrderSummaryDTO{
			ID:          row.ID,
			OrderNumber: row.OrderNumber,
			StatusName:  row.StatusName,
			TotalAmount: row.TotalAmount.Round(2).InexactFloat64(),
			OrderDate:   row.OrderDate,
			TotalParts:  row.TotalParts,
		})
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, orderID int64) (*OrderDetailDTO, error) {
	header, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	parts, err := s.repo.FindOrderParts(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order parts")
	}

	detail := &OrderDetailDTO{
		ID:            header.ID,
		OrderNumber:   header.OrderNumber,
		OrderStatus:   header.OrderStatus,
		TotalAmount:   header.TotalAmount.Round(2).InexactFloat64(),
		OrderDate:     header.OrderDate,
		CustomerName:  header.CustomerName,
		CustomerEmail: header.CustomerEmail,
		Parts:         make([]OrderPartDTO, 0, len(parts)),
	}
	for _, p := range parts {
		detail.Parts = append(detail.Parts, OrderPartDTO{
			ID:           p.ID,
			InternalCode: p.InternalCode,
			Description:  p.Description,
			Quantity:     p.Quantity,
			UnitPrice:    p.UnitPrice.Round(2).InexactFloat64(),
			PartStatus:   p.PartStatus,
			Notes:        p.Notes,
		})
	}
	return detail, nil
}

func (s *service) ListOrderStatuses(ctx context.Context) ([]StatusDTO, error) {
	rows, err := s.repo.ListOrderStatuses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order statuses")
	}
	return statusDTOs(rows), nil
}

func (s *service) ListPartStatuses(ctx context.Context) ([]StatusDTO, error) {
	rows, err := s.repo.ListPartStatuses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list part statuses")
	}
	return statusDTOs(rows), nil
}

func statusDTOs(rows []StatusRow) []StatusDTO {
	out := make([]StatusDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, StatusDTO{ID: row.ID, StatusName: row.StatusName})
	}
	return out
}
