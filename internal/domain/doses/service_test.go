package doses

import (
	"context"
	"errors"
	"testing"
	"time"

	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
	"receta-segura/internal/ports/notify"

	"github.com/rs/zerolog"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID  map[string]Dose
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Dose{}}
}

func (r *testRepo) Create(ctx context.Context, d Dose) error {
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

func (r *testRepo) CreateBatch(ctx context.Context, ds []Dose) error {
	for _, d := range ds {
		if err := r.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Dose, error) {
	d, ok := r.byID[id]
	if !ok {
		return Dose{}, errRepoNotFound
	}
	return d, nil
}

func (r *testRepo) List(ctx context.Context) ([]Dose, error) {
	out := make([]Dose, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *testRepo) ListByTreatment(ctx context.Context, treatmentID string) ([]Dose, error) {
	out := make([]Dose, 0)
	for _, id := range r.order {
		if d := r.byID[id]; d.TreatmentID == treatmentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, d Dose) error {
	if _, ok := r.byID[d.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) DeleteByTreatment(ctx context.Context, treatmentID string) error {
	kept := r.order[:0]
	for _, id := range r.order {
		if r.byID[id].TreatmentID == treatmentID {
			delete(r.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return nil
}

func (r *testRepo) DeleteAll(ctx context.Context) error {
	r.byID = map[string]Dose{}
	r.order = nil
	return nil
}

type testSettingsRepo struct {
	s settings.AppSettings
}

func (r *testSettingsRepo) Get(ctx context.Context) (settings.AppSettings, error) { return r.s, nil }
func (r *testSettingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	r.s = s
	return nil
}
func (r *testSettingsRepo) OnboardingCompleted(ctx context.Context) (bool, error) { return false, nil }
func (r *testSettingsRepo) CompleteOnboarding(ctx context.Context) error          { return nil }
func (r *testSettingsRepo) Reset(ctx context.Context) error                       { return nil }

type testScheduler struct {
	got []notify.Reminder
}

func (s *testScheduler) Schedule(ctx context.Context, r notify.Reminder) error {
	s.got = append(s.got, r)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *testRepo) *Service {
	g := NewGenerator(zerolog.Nop())
	g.now = fixedNow
	svc := NewService(repo, g)
	svc.now = fixedNow
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestGenerateForTreatment_PersistsBatch(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	tr := treatments.Treatment{
		ID:             "t-1",
		MedicationName: "Metformina",
		Dose:           "850mg",
		Schedules: []treatments.Schedule{
			{ID: "s-1", Time: "07:30", Enabled: true},
			{ID: "s-2", Time: "19:30", Enabled: true},
		},
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	n, err := svc.GenerateForTreatment(context.Background(), tr, 30)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n != 60 {
		t.Fatalf("expected 60 doses generated, got %d", n)
	}

	stored, _ := repo.ListByTreatment(context.Background(), "t-1")
	if len(stored) != 60 {
		t.Fatalf("expected 60 doses persisted, got %d", len(stored))
	}
}

func TestMarkTaken_SetsTakenAt(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	_ = repo.Create(context.Background(), Dose{
		ID:            "d-1",
		TreatmentID:   "t-1",
		ScheduledTime: fixedNow().Add(-time.Hour),
		Status:        StatusPending,
	})

	d, err := svc.MarkTaken(context.Background(), "d-1", "con el desayuno")
	if err != nil {
		t.Fatalf("mark taken: %v", err)
	}
	if d.Status != StatusTaken {
		t.Fatalf("expected taken, got %s", d.Status)
	}
	if d.TakenAt == nil || !d.TakenAt.Equal(fixedNow()) {
		t.Fatalf("expected takenAt = now, got %v", d.TakenAt)
	}
	if d.Notes != "con el desayuno" {
		t.Fatalf("notes not persisted: %q", d.Notes)
	}
}

func TestMarkMissed_DoesNotTouchTakenAt(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	prev := fixedNow().Add(-2 * time.Hour)
	_ = repo.Create(context.Background(), Dose{
		ID:      "d-1",
		Status:  StatusTaken,
		TakenAt: &prev,
		Notes:   "nota previa",
	})

	d, err := svc.MarkMissed(context.Background(), "d-1", "")
	if err != nil {
		t.Fatalf("mark missed: %v", err)
	}
	if d.Status != StatusMissed {
		t.Fatalf("expected missed, got %s", d.Status)
	}
	// Merge parcial: missed no pisa takenAt ni notas vacías
	if d.TakenAt == nil || !d.TakenAt.Equal(prev) {
		t.Fatalf("takenAt should be untouched, got %v", d.TakenAt)
	}
	if d.Notes != "nota previa" {
		t.Fatalf("empty notes should not overwrite, got %q", d.Notes)
	}
}

func TestMarkSkipped_NotFound(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	if _, err := svc.MarkSkipped(context.Background(), "nope", ""); !errors.Is(err, errRepoNotFound) {
		t.Fatalf("expected repo not found, got %v", err)
	}
}

func TestMark_EmptyID(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	if _, err := svc.MarkTaken(context.Background(), "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateForTreatment_SchedulesReminders(t *testing.T) {
	repo := newTestRepo()
	sched := &testScheduler{}
	prefs := &testSettingsRepo{s: settings.Defaults()}

	svc := newTestService(repo).WithReminders(sched, prefs)

	start := fixedNow().Add(-24 * time.Hour) // día 1 en el pasado, resto futuro
	tr := treatments.Treatment{
		ID:             "t-1",
		MedicationName: "Losartán",
		Dose:           "50mg",
		Schedules: []treatments.Schedule{
			{ID: "s-1", Time: "20:00", Enabled: true},
		},
		StartDate: start,
	}

	if _, err := svc.GenerateForTreatment(context.Background(), tr, 3); err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Solo las dosis futuras piden recordatorio
	if len(sched.got) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(sched.got))
	}
	for _, r := range sched.got {
		want := r.ScheduledTime.Add(-5 * time.Minute) // default reminderMinutesBefore
		if !r.NotifyAt.Equal(want) {
			t.Fatalf("notifyAt = %v, expected %v", r.NotifyAt, want)
		}
	}
}

func TestGenerateForTreatment_RemindersDisabled(t *testing.T) {
	repo := newTestRepo()
	sched := &testScheduler{}
	prefs := &testSettingsRepo{s: settings.AppSettings{NotificationsEnabled: false}}

	svc := newTestService(repo).WithReminders(sched, prefs)

	tr := treatments.Treatment{
		ID:        "t-1",
		Schedules: []treatments.Schedule{{ID: "s-1", Time: "08:00", Enabled: true}},
		StartDate: fixedNow(),
	}

	if _, err := svc.GenerateForTreatment(context.Background(), tr, 3); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(sched.got) != 0 {
		t.Fatalf("expected no reminders with notifications disabled, got %d", len(sched.got))
	}
}
