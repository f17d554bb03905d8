package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no patient with the given id exists.
var ErrNotFound = errors.New("patient not found")

// ErrDuplicateCard is returned by the relational backend when the
// health card number is already registered.
var ErrDuplicateCard = errors.New("health card number already registered")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int) (*Patient, error)
	List(ctx context.Context, limit, skip int) ([]*Patient, error)
	Update(ctx context.Context, id int, patch Patch) (*Patient, error)
	Delete(ctx context.Context, id int) error
}
