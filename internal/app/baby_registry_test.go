package app_test

import (
	"context"
	"errors"
	"testing"

	"nappu/internal/app"
	"nappu/internal/domain"
	"nappu/internal/storage"
)

func TestBabyAdd_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)

	created, err := repo.Babies.Add(ctx, domain.CreateBabyInput{
		Name: "Mei", BirthDate: "2025-12-01", Gender: domain.GenderFemale, Avatar: "🐣",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID == "" || !created.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected id and createdAt to be assigned, got %+v", created)
	}

	reloaded := app.NewBabyRegistry(storage.New(backend))
	reloaded.Load(ctx)

	babies := reloaded.List()
	if len(babies) != 1 {
		t.Fatalf("expected 1 baby after reload, got %d", len(babies))
	}
	got := babies[0]
	if got.ID != created.ID || got.Name != "Mei" || got.BirthDate != "2025-12-01" ||
		got.Gender != domain.GenderFemale || got.Avatar != "🐣" || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("reloaded baby differs: got %+v want %+v", got, created)
	}
	if reloaded.CurrentID() != created.ID {
		t.Fatalf("expected current %s, got %q", created.ID, reloaded.CurrentID())
	}
}

func TestBabyAdd_OnlyFirstBecomesCurrent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, newFlakyBackend())

	first, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})
	second, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "B", BirthDate: "2025-02-01"})

	if repo.Babies.CurrentID() != first.ID {
		t.Fatalf("expected first baby to stay current, got %q", repo.Babies.CurrentID())
	}
	if first.ID == second.ID {
		t.Fatal("expected unique ids")
	}
	cur, ok := repo.Babies.Current()
	if !ok || cur.Name != "A" {
		t.Fatalf("Current() = %+v, %v", cur, ok)
	}
}

func TestBabyLoad_DefaultsCurrentToFirst(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	st := storage.New(backend)
	if err := st.Set(ctx, storage.KeyBabies, []domain.Baby{{ID: "x"}, {ID: "y"}}); err != nil {
		t.Fatal(err)
	}

	reg := app.NewBabyRegistry(st)
	reg.Load(ctx)
	if reg.CurrentID() != "x" {
		t.Fatalf("expected current x, got %q", reg.CurrentID())
	}
}

func TestBabyLoad_CorruptData(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	_ = backend.KV.Write(ctx, storage.KeyBabies, []byte("not json"))

	reg := app.NewBabyRegistry(storage.New(backend))
	reg.Load(ctx)

	if len(reg.List()) != 0 {
		t.Fatalf("expected empty list, got %v", reg.List())
	}
	if !errors.Is(reg.LastErr(), storage.ErrReadFailed) {
		t.Fatalf("expected read failure flag, got %v", reg.LastErr())
	}
	reg.ClearError()
	if reg.LastErr() != nil {
		t.Fatal("expected ClearError to reset LastErr")
	}
}

func TestBabyUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, newFlakyBackend())
	baby, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{
		Name: "Mei", BirthDate: "2025-12-01", Gender: domain.GenderFemale, Avatar: "a.png",
	})

	updated, err := repo.Babies.Update(ctx, baby.ID, domain.UpdateBabyInput{Name: ptr("Mei Mei")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Mei Mei" {
		t.Errorf("expected new name, got %q", updated.Name)
	}
	if updated.BirthDate != baby.BirthDate || updated.Gender != baby.Gender ||
		updated.Avatar != baby.Avatar || updated.ID != baby.ID || !updated.CreatedAt.Equal(baby.CreatedAt) {
		t.Errorf("fields outside the payload changed: before %+v after %+v", baby, updated)
	}
}

func TestBabyUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, newFlakyBackend())
	_, _ = repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})

	_, err := repo.Babies.Update(ctx, "missing", domain.UpdateBabyInput{Name: ptr("B")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "missing" {
		t.Fatalf("expected NotFoundError{missing}, got %v", err)
	}
	if !errors.Is(repo.Babies.LastErr(), domain.ErrNotFound) {
		t.Fatalf("expected LastErr to record the failure, got %v", repo.Babies.LastErr())
	}
	if repo.Babies.List()[0].Name != "A" {
		t.Fatal("collection changed on failed update")
	}
}

func TestSetCurrent(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	a, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})
	b, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "B", BirthDate: "2025-02-01"})

	if err := repo.Babies.SetCurrent(ctx, b.ID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	if repo.Babies.CurrentID() != b.ID {
		t.Fatalf("expected current %s", b.ID)
	}

	err := repo.Babies.SetCurrent(ctx, "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.Babies.CurrentID() != b.ID {
		t.Fatalf("current changed after failed SetCurrent: %q", repo.Babies.CurrentID())
	}

	var stored string
	if _, err := storage.New(backend).Get(ctx, storage.KeyCurrentBabyID, &stored); err != nil || stored != b.ID {
		t.Fatalf("expected persisted current %s, got %q (%v)", b.ID, stored, err)
	}
	_ = a
}

func TestBabyAdd_WriteFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	backend.fail(storage.KeyBabies)

	_, err := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})
	if !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
	if len(repo.Babies.List()) != 0 || repo.Babies.CurrentID() != "" {
		t.Fatal("in-memory state changed despite failed write")
	}
	if !errors.Is(repo.Babies.LastErr(), storage.ErrWriteFailed) {
		t.Fatalf("expected LastErr write failure, got %v", repo.Babies.LastErr())
	}
}

func TestBabyUpdate_WriteFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	baby, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})
	backend.fail(storage.KeyBabies)

	if _, err := repo.Babies.Update(ctx, baby.ID, domain.UpdateBabyInput{Name: ptr("B")}); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
	if got, _ := repo.Babies.Get(baby.ID); got.Name != "A" {
		t.Fatalf("in-memory name changed despite failed write: %q", got.Name)
	}
	if !errors.Is(repo.Babies.LastErr(), storage.ErrWriteFailed) {
		t.Fatalf("expected LastErr write failure, got %v", repo.Babies.LastErr())
	}
}

func TestSetCurrent_WriteFailureKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	a, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})
	b, _ := repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "B", BirthDate: "2025-02-01"})
	backend.fail(storage.KeyCurrentBabyID)

	if err := repo.Babies.SetCurrent(ctx, b.ID); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
	if repo.Babies.CurrentID() != a.ID {
		t.Fatalf("current moved to %q despite failed write", repo.Babies.CurrentID())
	}
	if !errors.Is(repo.Babies.LastErr(), storage.ErrWriteFailed) {
		t.Fatalf("expected LastErr write failure, got %v", repo.Babies.LastErr())
	}
}

func TestBabySubscribe(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, newFlakyBackend())

	calls := 0
	unsubscribe := repo.Babies.Subscribe(func() { calls++ })
	_, _ = repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "A", BirthDate: "2025-01-01"})
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}

	unsubscribe()
	_, _ = repo.Babies.Add(ctx, domain.CreateBabyInput{Name: "B", BirthDate: "2025-01-01"})
	if calls != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d", calls)
	}
}
