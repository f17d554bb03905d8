package patient

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	// Ids are server-assigned; a client-supplied id is ignored.
	p.ID = 0
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, skip int) ([]*Patient, error) {
	return s.repo.List(ctx, limit, skip)
}

func (s *Service) UpdatePatient(ctx context.Context, id int, patch Patch) (*Patient, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeletePatient(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
