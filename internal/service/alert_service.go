package service

import (
	"context"

	"cloudledger/internal/dto"
	"cloudledger/internal/repository"
)

// AlertService evaluates reorder alerts against the current inventory
// snapshot. Pure and stateless: alerts are query results, never stored.
type AlertService interface {
	Evaluate(ctx context.Context) ([]dto.ReorderAlert, error)
}

type alertService struct {
	repo repository.ProductRepository
}

func NewAlertService(repo repository.ProductRepository) AlertService {
	return &alertService{repo: repo}
}

// Evaluate returns every product whose stock is strictly below its reorder
// point. A product sitting exactly at the reorder point does not alert.
func (s *alertService) Evaluate(ctx context.Context) ([]dto.ReorderAlert, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.ReorderAlert, 0)
	for i := range products {
		p := &products[i]
		if p.Stock < p.ReorderPoint {
			alerts = append(alerts, dto.ReorderAlert{
				ProductID:    p.ID.String(),
				Name:         p.Name,
				CurrentStock: p.Stock,
				ReorderPoint: p.ReorderPoint,
			})
		}
	}
	return alerts, nil
}
