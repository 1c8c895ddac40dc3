package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nappu/internal/app"
	"nappu/internal/domain"
	"nappu/internal/storage"
)

func TestFeedingStore_AddPersists(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	end := fixedNow.Add(20 * time.Minute)

	rec, err := repo.Feedings.Add(ctx, domain.CreateFeedingInput{
		BabyID: "b1", Type: domain.FeedingBreastDirect, Duration: ptr(20.0),
		BreastSide: domain.BreastLeft, StartTime: fixedNow, EndTime: &end, Note: "sleepy",
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || !rec.CreatedAt.Equal(fixedNow) {
		t.Fatalf("id/createdAt not assigned: %+v", rec)
	}

	fresh := app.NewFeedingStore(storage.New(backend))
	fresh.Load(ctx)
	got := fresh.List()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.ID != rec.ID || r.BabyID != "b1" || r.Type != domain.FeedingBreastDirect ||
		r.Duration == nil || *r.Duration != 20 || r.Amount != nil || r.BreastSide != domain.BreastLeft ||
		!r.StartTime.Equal(fixedNow) || r.EndTime == nil || !r.EndTime.Equal(end) || r.Note != "sleepy" {
		t.Fatalf("reloaded record differs: %+v", r)
	}
}

func TestFeedingStore_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, newFlakyBackend())
	rec, _ := repo.Feedings.Add(ctx, domain.CreateFeedingInput{
		BabyID: "b1", Type: domain.FeedingFormula, Amount: ptr(90.0), StartTime: fixedNow, Note: "ok",
	})

	updated, err := repo.Feedings.Update(ctx, rec.ID, domain.UpdateFeedingInput{Amount: ptr(120.0)})
	if err != nil {
		t.Fatal(err)
	}
	if *updated.Amount != 120 {
		t.Errorf("amount = %v, want 120", *updated.Amount)
	}
	if updated.Type != rec.Type || updated.Note != "ok" || !updated.StartTime.Equal(rec.StartTime) ||
		updated.BabyID != rec.BabyID || !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("fields outside the payload changed: %+v", updated)
	}

	_, err = repo.Feedings.Update(ctx, "nope", domain.UpdateFeedingInput{Note: ptr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(repo.Feedings.LastErr(), domain.ErrNotFound) {
		t.Fatalf("expected LastErr to record the failure, got %v", repo.Feedings.LastErr())
	}
	if got := repo.Feedings.List(); len(got) != 1 || got[0].ID != rec.ID || *got[0].Amount != 120 || got[0].Note != "ok" {
		t.Fatalf("collection changed on failed update: %+v", got)
	}
}

func TestFeedingStore_DoesNotAliasCallerPointers(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)

	amount := 90.0
	rec, err := repo.Feedings.Add(ctx, domain.CreateFeedingInput{
		BabyID: "b1", Type: domain.FeedingFormula, Amount: &amount, StartTime: fixedNow,
	})
	if err != nil {
		t.Fatal(err)
	}
	amount = 5
	*rec.Amount = 6

	got, ok := repo.Feedings.Get(rec.ID)
	if !ok || *got.Amount != 90 {
		t.Fatalf("stored amount followed a caller pointer: %v", *got.Amount)
	}
	*got.Amount = 7
	if *repo.Feedings.List()[0].Amount != 90 {
		t.Fatal("Get returned a record aliasing the stored one")
	}

	fresh := app.NewFeedingStore(storage.New(backend))
	fresh.Load(ctx)
	if persisted := fresh.List()[0]; *persisted.Amount != 90 {
		t.Fatalf("persisted amount = %v, want 90", *persisted.Amount)
	}
}

func TestRecordStores_UpdateWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	feed, _ := repo.Feedings.Add(ctx, domain.CreateFeedingInput{
		BabyID: "b1", Type: domain.FeedingFormula, Amount: ptr(90.0), StartTime: fixedNow,
	})
	diaper, _ := repo.Diapers.Add(ctx, domain.CreateDiaperInput{BabyID: "b1", Type: domain.DiaperPee, Time: fixedNow})
	backend.fail(storage.KeyFeedingRecords)
	backend.fail(storage.KeyDiaperRecords)

	if _, err := repo.Feedings.Update(ctx, feed.ID, domain.UpdateFeedingInput{Amount: ptr(150.0)}); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("feeding Update: expected write failure, got %v", err)
	}
	if got, _ := repo.Feedings.Get(feed.ID); *got.Amount != 90 {
		t.Fatalf("feeding amount changed despite failed write: %v", *got.Amount)
	}
	if !errors.Is(repo.Feedings.LastErr(), storage.ErrWriteFailed) {
		t.Fatalf("feeding LastErr = %v", repo.Feedings.LastErr())
	}

	if _, err := repo.Diapers.Update(ctx, diaper.ID, domain.UpdateDiaperInput{Type: ptr(domain.DiaperPoop)}); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("diaper Update: expected write failure, got %v", err)
	}
	if got, _ := repo.Diapers.Get(diaper.ID); got.Type != domain.DiaperPee {
		t.Fatalf("diaper type changed despite failed write: %v", got.Type)
	}
	if !errors.Is(repo.Diapers.LastErr(), storage.ErrWriteFailed) {
		t.Fatalf("diaper LastErr = %v", repo.Diapers.LastErr())
	}
}

func TestFeedingStore_DeleteAbsentIDSucceeds(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, newFlakyBackend())
	_, _ = repo.Feedings.Add(ctx, domain.CreateFeedingInput{BabyID: "b1", Type: domain.FeedingFormula, StartTime: fixedNow})

	if err := repo.Feedings.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(repo.Feedings.List()) != 1 {
		t.Fatal("absent id delete removed records")
	}
}

func TestFeedingStore_WriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)
	rec, _ := repo.Feedings.Add(ctx, domain.CreateFeedingInput{BabyID: "b1", Type: domain.FeedingFormula, StartTime: fixedNow})

	backend.fail(storage.KeyFeedingRecords)
	notified := 0
	repo.Feedings.Subscribe(func() { notified++ })

	if _, err := repo.Feedings.Add(ctx, domain.CreateFeedingInput{BabyID: "b1", Type: domain.FeedingFormula, StartTime: fixedNow}); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("Add: expected write failure, got %v", err)
	}
	if err := repo.Feedings.Delete(ctx, rec.ID); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("Delete: expected write failure, got %v", err)
	}
	if len(repo.Feedings.List()) != 1 {
		t.Fatalf("memory diverged from storage: %d records", len(repo.Feedings.List()))
	}
	if notified != 0 {
		t.Fatalf("failed writes must not notify, got %d", notified)
	}
	if !errors.Is(repo.Feedings.LastErr(), storage.ErrWriteFailed) {
		t.Fatalf("LastErr = %v", repo.Feedings.LastErr())
	}
}

func TestFeedingStore_Queries(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, 2, 8, 12, 0, 0, 0, loc)
	repo := app.NewRepository(storage.New(newFlakyBackend()),
		app.WithClock(func() time.Time { return now }),
		app.WithIDGenerator(sequentialIDs()),
	)
	repo.Load(ctx)

	add := func(baby string, at time.Time) domain.FeedingRecord {
		rec, err := repo.Feedings.Add(ctx, domain.CreateFeedingInput{BabyID: baby, Type: domain.FeedingFormula, StartTime: at})
		if err != nil {
			t.Fatal(err)
		}
		return rec
	}
	early := add("b1", time.Date(2026, 2, 8, 0, 1, 0, 0, loc))
	late := add("b1", time.Date(2026, 2, 8, 11, 0, 0, 0, loc))
	yesterday := add("b1", time.Date(2026, 2, 7, 23, 59, 0, 0, loc))
	add("b2", time.Date(2026, 2, 8, 13, 0, 0, 0, loc))

	today := repo.Feedings.Today("b1")
	if len(today) != 2 || today[0].ID != late.ID || today[1].ID != early.ID {
		t.Fatalf("Today = %v", today)
	}
	onDay := repo.Feedings.OnDay("b1", time.Date(2026, 2, 7, 8, 0, 0, 0, loc))
	if len(onDay) != 1 || onDay[0].ID != yesterday.ID {
		t.Fatalf("OnDay = %v", onDay)
	}
	last, ok := repo.Feedings.Last("b1")
	if !ok || last.ID != late.ID {
		t.Fatalf("Last = %v, %v", last, ok)
	}
	if _, ok := repo.Feedings.Last("nobody"); ok {
		t.Fatal("Last for unknown baby should report none")
	}
}

func TestDiaperStore(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	repo := newTestRepo(t, backend)

	rec, err := repo.Diapers.Add(ctx, domain.CreateDiaperInput{
		BabyID: "b1", Type: domain.DiaperPoop, PoopConsistency: domain.PoopLoose, Time: fixedNow, Note: "n",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := repo.Diapers.Update(ctx, rec.ID, domain.UpdateDiaperInput{Type: ptr(domain.DiaperBoth)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Type != domain.DiaperBoth || updated.PoopConsistency != domain.PoopLoose || updated.Note != "n" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	fresh := app.NewDiaperStore(storage.New(backend))
	fresh.Load(ctx)
	if got := fresh.List(); len(got) != 1 || got[0].Type != domain.DiaperBoth || !got[0].Time.Equal(fixedNow) {
		t.Fatalf("reloaded = %+v", got)
	}

	if err := repo.Diapers.Delete(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	if len(repo.Diapers.ForBaby("b1")) != 0 {
		t.Fatal("delete did not remove the record")
	}
}

func TestRecordStore_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	_ = backend.KV.Write(ctx, storage.KeyDiaperRecords, []byte("{broken"))

	store := app.NewDiaperStore(storage.New(backend))
	store.Load(ctx)
	if len(store.List()) != 0 {
		t.Fatal("expected empty list")
	}
	if !errors.Is(store.LastErr(), storage.ErrReadFailed) {
		t.Fatalf("LastErr = %v", store.LastErr())
	}
}
