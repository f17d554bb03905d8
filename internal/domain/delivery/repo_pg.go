package delivery

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type pgRepo struct{ db *gorm.DB }

// NewPGRepo returns a Repository backed by Postgres through gorm.
// Referential integrity of patient_id is enforced by the foreign-key
// constraint, not application logic.
func NewPGRepo(db *gorm.DB) Repository {
	return &pgRepo{db: db}
}

func (r *pgRepo) Create(ctx context.Context, d *Delivery) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrPatientMissing
	}
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id int) (*Delivery, error) {
	var d Delivery
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *pgRepo) List(ctx context.Context, f Filter, limit, skip int) ([]*Delivery, error) {
	q := r.db.WithContext(ctx).Order("id")
	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.EmissionFrom != nil {
		q = q.Where("invoice_emission_date >= ?", *f.EmissionFrom)
	}
	if f.EmissionTo != nil {
		q = q.Where("invoice_emission_date <= ?", *f.EmissionTo)
	}
	if f.DeliveryFrom != nil {
		q = q.Where("delivery_date >= ?", *f.DeliveryFrom)
	}
	if f.DeliveryTo != nil {
		q = q.Where("delivery_date <= ?", *f.DeliveryTo)
	}

	out := []*Delivery{}
	err := q.Limit(limit).Offset(skip).Find(&out).Error
	return out, err
}

func (r *pgRepo) Update(ctx context.Context, id int, patch Patch) (*Delivery, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(d)

	err = r.db.WithContext(ctx).Save(d).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, ErrPatientMissing
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *pgRepo) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&Delivery{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
