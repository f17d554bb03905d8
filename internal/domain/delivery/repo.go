package delivery

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no delivery with the given id exists.
var ErrNotFound = errors.New("delivery not found")

// ErrPatientMissing is returned by the relational backend when patient_id
// references no existing patient. The JSON backend does not check
// referential integrity, matching the file-backed iterations.
var ErrPatientMissing = errors.New("patient does not exist")

type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	GetByID(ctx context.Context, id int) (*Delivery, error)
	List(ctx context.Context, f Filter, limit, skip int) ([]*Delivery, error)
	Update(ctx context.Context, id int, patch Patch) (*Delivery, error)
	Delete(ctx context.Context, id int) error
}
