package delivery

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) (Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewJSONRepo(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return repo, dir
}

func mustCreateWithStatus(t *testing.T, repo Repository, patientID int, status Status) *Delivery {
	t.Helper()
	d := &Delivery{
		PatientID: patientID,
		Invoice:   Invoice{Number: "NF-001", EmissionDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		Status:    status,
	}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestJSONRepo_Create_AssignsMonotonicIDs(t *testing.T) {
	repo, _ := newTestRepo(t)

	first := mustCreateWithStatus(t, repo, 1, StatusPending)
	second := mustCreateWithStatus(t, repo, 1, StatusPending)

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestJSONRepo_PersistsAcrossReopen(t *testing.T) {
	repo, dir := newTestRepo(t)
	mustCreateWithStatus(t, repo, 1, StatusPending)
	mustCreateWithStatus(t, repo, 2, StatusDelivered)

	reopened, err := NewJSONRepo(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := reopened.List(context.Background(), Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 deliveries after reopen, got %d", len(items))
	}

	third := mustCreateWithStatus(t, reopened, 1, StatusPending)
	if third.ID != 3 {
		t.Errorf("expected id 3 after reopen, got %d", third.ID)
	}
}

func TestJSONRepo_List_StatusFilterKeepsInsertionOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	first := mustCreateWithStatus(t, repo, 1, StatusPending)
	mustCreateWithStatus(t, repo, 2, StatusDelivered)
	third := mustCreateWithStatus(t, repo, 3, StatusPending)

	pending := StatusPending
	items, err := repo.List(context.Background(), Filter{Status: &pending}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected exactly the two pending deliveries, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != third.ID {
		t.Errorf("expected insertion order [%d %d], got [%d %d]",
			first.ID, third.ID, items[0].ID, items[1].ID)
	}
}

func TestJSONRepo_List_PatientAndDateFilters(t *testing.T) {
	repo, _ := newTestRepo(t)

	early := &Delivery{
		PatientID: 1,
		Invoice:   Invoice{Number: "NF-001", EmissionDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		Status:    StatusPending,
	}
	late := &Delivery{
		PatientID: 2,
		Invoice:   Invoice{Number: "NF-002", EmissionDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		Status:    StatusPending,
	}
	repo.Create(context.Background(), early)
	repo.Create(context.Background(), late)

	pid := 2
	items, _ := repo.List(context.Background(), Filter{PatientID: &pid}, 10, 0)
	if len(items) != 1 || items[0].ID != late.ID {
		t.Errorf("expected only patient 2's delivery, got %+v", items)
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	items, _ = repo.List(context.Background(), Filter{EmissionFrom: &from}, 10, 0)
	if len(items) != 1 || items[0].ID != late.ID {
		t.Errorf("expected only the late emission, got %+v", items)
	}

	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	items, _ = repo.List(context.Background(), Filter{EmissionTo: &to}, 10, 0)
	if len(items) != 1 || items[0].ID != early.ID {
		t.Errorf("expected only the early emission, got %+v", items)
	}
}

func TestJSONRepo_List_Pagination(t *testing.T) {
	repo, _ := newTestRepo(t)
	for i := 0; i < 5; i++ {
		mustCreateWithStatus(t, repo, i+1, StatusPending)
	}

	items, err := repo.List(context.Background(), Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != 3 || items[1].ID != 4 {
		t.Errorf("expected window [3 4], got %+v", items)
	}
}

func TestJSONRepo_Update_Partial(t *testing.T) {
	repo, _ := newTestRepo(t)
	created := mustCreateWithStatus(t, repo, 1, StatusPending)
	when := time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)

	updated, err := repo.Update(context.Background(), created.ID, Patch{
		Status:       statusPtr(StatusDelivered),
		DeliveryDate: &when,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusDelivered || updated.DeliveryDate == nil {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.PatientID != 1 || updated.Invoice.Number != "NF-001" {
		t.Errorf("absent fields should stay untouched: %+v", updated)
	}
}

func TestJSONRepo_Update_EmptyPatchUnchanged(t *testing.T) {
	repo, _ := newTestRepo(t)
	created := mustCreateWithStatus(t, repo, 1, StatusPending)

	updated, err := repo.Update(context.Background(), created.ID, Patch{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != created.Status || updated.PatientID != created.PatientID ||
		updated.Invoice != created.Invoice || updated.DeliveryDate != nil {
		t.Errorf("empty patch must leave the record unchanged: %+v vs %+v", updated, created)
	}
}

func TestJSONRepo_Delete_ThenMutateFails(t *testing.T) {
	repo, _ := newTestRepo(t)
	created := mustCreateWithStatus(t, repo, 1, StatusPending)

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.Update(context.Background(), created.ID, Patch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update after delete, got %v", err)
	}
}
