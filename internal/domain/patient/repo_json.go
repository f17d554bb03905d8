package patient

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/medispatch/medispatch/internal/platform/jsonfile"
)

// jsonRepo keeps the whole patient collection in memory and rewrites the
// backing file on every mutation. A single mutex serializes access so id
// allocation is atomic with insertion.
type jsonRepo struct {
	mu      sync.Mutex
	path    string
	records []*Patient
	nextID  int
}

// NewJSONRepo loads (or starts) the patients file under dir. The next id is
// recomputed from the maximum stored id.
func NewJSONRepo(dir string) (Repository, error) {
	r := &jsonRepo{path: filepath.Join(dir, "patients.json"), nextID: 1}
	if err := jsonfile.Load(r.path, &r.records); err != nil {
		return nil, errors.Wrap(err, "load patients")
	}
	for _, p := range r.records {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r, nil
}

func (r *jsonRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.records = append(r.records, p)
	if err := jsonfile.Save(r.path, r.records); err != nil {
		r.records = r.records[:len(r.records)-1]
		return err
	}
	r.nextID++
	return nil
}

func (r *jsonRepo) GetByID(_ context.Context, id int) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.records {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *jsonRepo) List(_ context.Context, limit, skip int) ([]*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if skip >= len(r.records) {
		return []*Patient{}, nil
	}
	end := skip + limit
	if end > len(r.records) {
		end = len(r.records)
	}

	out := make([]*Patient, 0, end-skip)
	for _, p := range r.records[skip:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *jsonRepo) Update(_ context.Context, id int, patch Patch) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.records {
		if p.ID != id {
			continue
		}
		updated := *p
		patch.Apply(&updated)
		r.records[i] = &updated
		if err := jsonfile.Save(r.path, r.records); err != nil {
			r.records[i] = p
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

	for i, p := range r.records {
		if p.ID != id {
			continue
		}
		removed := r.records[i]
		r.records = append(r.records[:i], r.records[i+1:]...)
		if err := jsonfile.Save(r.path, r.records); err != nil {
			r.records = append(r.records[:i], append([]*Patient{removed}, r.records[i:]...)...)
			return err
		}
		return nil
	}
	return ErrNotFound
}
