package delivery

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDelivery(ctx context.Context, d *Delivery) error {
	if d.Status == "" {
		d.Status = StatusPending
	}
	if err := d.Validate(); err != nil {
		return err
	}
	d.ID = 0
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDelivery(ctx context.Context, id int) (*Delivery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDeliveries(ctx context.Context, f Filter, limit, skip int) ([]*Delivery, error) {
	return s.repo.List(ctx, f, limit, skip)
}

func (s *Service) UpdateDelivery(ctx context.Context, id int, patch Patch) (*Delivery, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteDelivery(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
