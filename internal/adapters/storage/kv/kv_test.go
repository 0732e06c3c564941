package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
)

func openTestStore(t *testing.T) *FileStore {
	t.Helper()

	s, err := OpenFile(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	return s
}

func sampleTreatment(id string) treatments.Treatment {
	return treatments.Treatment{
		ID:             id,
		MedicationName: "Metformina",
		Dose:           "850mg",
		Frequency:      treatments.FrequencyDaily,
		Schedules:      []treatments.Schedule{{ID: id + "-s1", Time: "07:30", Enabled: true}},
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	ctx := context.Background()

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetItem(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.GetItem(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("expected k=v after reopen, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStore_RemoveItem(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.SetItem(ctx, "k", "v")
	if err := s.RemoveItem(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, "k"); ok {
		t.Fatal("key should be gone")
	}
}

func TestTreatmentsRepo_CRUD(t *testing.T) {
	repo := NewTreatmentsRepo(openTestStore(t))
	ctx := context.Background()

	a, b := sampleTreatment("t-1"), sampleTreatment("t-2")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Orden de inserción preservado (array completo serializado)
	if len(all) != 2 || all[0].ID != "t-1" || all[1].ID != "t-2" {
		t.Fatalf("unexpected list: %+v", all)
	}

	a.Dose = "1000mg"
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, "t-1")
	if err != nil || got.Dose != "1000mg" {
		t.Fatalf("get after update: %+v, %v", got, err)
	}

	if err := repo.Delete(ctx, "t-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "t-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTreatmentsRepo_UpdateMissing(t *testing.T) {
	repo := NewTreatmentsRepo(openTestStore(t))

	if err := repo.Update(context.Background(), sampleTreatment("ghost")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDosesRepo_BatchAndCascade(t *testing.T) {
	repo := NewDosesRepo(openTestStore(t))
	ctx := context.Background()

	batch := []doses.Dose{
		{ID: "d-1", TreatmentID: "t-1", ScheduledTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), Status: doses.StatusPending},
		{ID: "d-2", TreatmentID: "t-1", ScheduledTime: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), Status: doses.StatusPending},
		{ID: "d-3", TreatmentID: "t-2", ScheduledTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Status: doses.StatusPending},
	}
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	byTreatment, err := repo.ListByTreatment(ctx, "t-1")
	if err != nil {
		t.Fatalf("list by treatment: %v", err)
	}
	if len(byTreatment) != 2 {
		t.Fatalf("expected 2 doses for t-1, got %d", len(byTreatment))
	}
	// ListByTreatment ordena por scheduledTime ascendente
	if byTreatment[0].ID != "d-2" || byTreatment[1].ID != "d-1" {
		t.Fatalf("bad order: %s, %s", byTreatment[0].ID, byTreatment[1].ID)
	}

	if err := repo.DeleteByTreatment(ctx, "t-1"); err != nil {
		t.Fatalf("delete by treatment: %v", err)
	}
	remaining, _ := repo.List(ctx)
	if len(remaining) != 1 || remaining[0].ID != "d-3" {
		t.Fatalf("cascade left wrong doses: %+v", remaining)
	}

	// Borrar sin coincidencias no es error
	if err := repo.DeleteByTreatment(ctx, "t-1"); err != nil {
		t.Fatalf("delete with no matches should be nil, got %v", err)
	}
}

func TestSettingsRepo_DefaultsAndOnboarding(t *testing.T) {
	repo := NewSettingsRepo(openTestStore(t))
	ctx := context.Background()

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != settings.Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	got.Theme = "dark"
	got.ReminderMinutesBefore = 15
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, _ := repo.Get(ctx)
	if saved.Theme != "dark" || saved.ReminderMinutesBefore != 15 {
		t.Fatalf("settings not persisted: %+v", saved)
	}

	done, _ := repo.OnboardingCompleted(ctx)
	if done {
		t.Fatal("onboarding should start incomplete")
	}
	if err := repo.CompleteOnboarding(ctx); err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if done, _ = repo.OnboardingCompleted(ctx); !done {
		t.Fatal("onboarding should be completed")
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got, _ := repo.Get(ctx); got != settings.Defaults() {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
	if done, _ = repo.OnboardingCompleted(ctx); done {
		t.Fatal("onboarding flag should be cleared after reset")
	}
}
