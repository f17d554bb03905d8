package delivery

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/medispatch/medispatch/internal/platform/jsonfile"
)

// jsonRepo mirrors the patient JSON store: the whole collection lives in
// memory, every mutation rewrites the backing file, and a single mutex makes
// id allocation atomic with insertion.
type jsonRepo struct {
	mu      sync.Mutex
	path    string
	records []*Delivery
	nextID  int
}

// NewJSONRepo loads (or starts) the deliveries file under dir.
func NewJSONRepo(dir string) (Repository, error) {
	r := &jsonRepo{path: filepath.Join(dir, "deliveries.json"), nextID: 1}
	if err := jsonfile.Load(r.path, &r.records); err != nil {
		return nil, errors.Wrap(err, "load deliveries")
	}
	for _, d := range r.records {
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
	}
	return r, nil
}

func (r *jsonRepo) Create(_ context.Context, d *Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = r.nextID
	r.records = append(r.records, d)
	if err := jsonfile.Save(r.path, r.records); err != nil {
		r.records = r.records[:len(r.records)-1]
		return err
	}
	r.nextID++
	return nil
}

func (r *jsonRepo) GetByID(_ context.Context, id int) (*Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.records {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *jsonRepo) List(_ context.Context, f Filter, limit, skip int) ([]*Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*Delivery, 0)
	for _, d := range r.records {
		if f.matches(d) {
			matched = append(matched, d)
		}
	}

	if skip >= len(matched) {
		return []*Delivery{}, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]*Delivery, 0, end-skip)
	for _, d := range matched[skip:end] {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *jsonRepo) Update(_ context.Context, id int, patch Patch) (*Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.records {
		if d.ID != id {
			continue
		}
		updated := *d
		patch.Apply(&updated)
		r.records[i] = &updated
		if err := jsonfile.Save(r.path, r.records); err != nil {
			r.records[i] = d
			return nil, err
		}
		cp := updated
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *jsonRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.records {
		if d.ID != id {
			continue
		}
		removed := r.records[i]
		r.records = append(r.records[:i], r.records[i+1:]...)
		if err := jsonfile.Save(r.path, r.records); err != nil {
			r.records = append(r.records[:i], append([]*Delivery{removed}, r.records[i:]...)...)
			return err
		}
		return nil
	}
	return ErrNotFound
}
