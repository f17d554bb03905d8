package patient

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type pgRepo struct{ db *gorm.DB }

// NewPGRepo returns a Repository backed by Postgres through gorm. Id
// allocation and health-card uniqueness are delegated to the engine.
func NewPGRepo(db *gorm.DB) Repository {
	return &pgRepo{db: db}
}

func (r *pgRepo) Create(ctx context.Context, p *Patient) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCard
	}
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id int) (*Patient, error) {
	var p Patient
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgRepo) List(ctx context.Context, limit, skip int) ([]*Patient, error) {
	out := []*Patient{}
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(skip).Find(&out).Error
	return out, err
}

func (r *pgRepo) Update(ctx context.Context, id int, patch Patch) (*Patient, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	err = r.db.WithContext(ctx).Save(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateCard
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgRepo) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&Patient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
