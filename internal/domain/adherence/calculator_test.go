package adherence

import (
	"testing"
	"time"

	"receta-segura/internal/domain/doses"
)

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

// mixedSet arma 10 dosis: 6 taken, 2 missed, 1 skipped, 1 pending.
func mixedSet() []doses.Dose {
	out := make([]doses.Dose, 0, 10)
	for i := 0; i < 6; i++ {
		taken := at(1+i, 9)
		out = append(out, doses.Dose{ID: "t", Status: doses.StatusTaken, ScheduledTime: at(1+i, 8), TakenAt: &taken})
	}
	out = append(out,
		doses.Dose{ID: "m1", Status: doses.StatusMissed, ScheduledTime: at(7, 8)},
		doses.Dose{ID: "m2", Status: doses.StatusMissed, ScheduledTime: at(8, 8)},
		doses.Dose{ID: "s1", Status: doses.StatusSkipped, ScheduledTime: at(9, 8)},
		doses.Dose{ID: "p1", Status: doses.StatusPending, ScheduledTime: at(10, 8)},
	)
	return out
}

func TestTreatmentStats_TotalDenominator(t *testing.T) {
	st := TreatmentStats(mixedSet())

	if st.Total != 10 || st.Taken != 6 || st.Missed != 2 || st.Skipped != 1 || st.Pending != 1 {
		t.Fatalf("bad counts: %+v", st)
	}
	// 6/10, no 6/8: pendientes y saltadas cuentan en el denominador
	if st.Percentage != 60 {
		t.Fatalf("expected 60%%, got %d%%", st.Percentage)
	}
}

func TestPeriodStats_ResolvedDenominator(t *testing.T) {
	st := PeriodStats(mixedSet())

	// 6/(6+2): saltadas y pendientes fuera del denominador
	if st.Percentage != 75 {
		t.Fatalf("expected 75%%, got %d%%", st.Percentage)
	}
}

func TestStats_EmptySetIsZero(t *testing.T) {
	if st := TreatmentStats(nil); st.Percentage != 0 || st.Total != 0 {
		t.Fatalf("treatment stats on empty set: %+v", st)
	}
	if st := PeriodStats([]doses.Dose{}); st.Percentage != 0 {
		t.Fatalf("period stats on empty set: %+v", st)
	}
	// Solo pendientes: resuelto = 0, no division por cero
	pendingOnly := []doses.Dose{{Status: doses.StatusPending}}
	if st := PeriodStats(pendingOnly); st.Percentage != 0 {
		t.Fatalf("period stats with pending only: %+v", st)
	}
}

func TestPercentage_Rounds(t *testing.T) {
	ds := []doses.Dose{
		{Status: doses.StatusTaken},
		{Status: doses.StatusTaken},
		{Status: doses.StatusMissed},
	}
	// 2/3 = 66.67 → 67
	if st := TreatmentStats(ds); st.Percentage != 67 {
		t.Fatalf("expected 67%%, got %d%%", st.Percentage)
	}
}

func TestFilterByStatus(t *testing.T) {
	ds := mixedSet()

	if got := FilterByStatus(ds, "missed"); len(got) != 2 {
		t.Fatalf("expected 2 missed, got %d", len(got))
	}
	if got := FilterByStatus(ds, "all"); len(got) != 10 {
		t.Fatalf("'all' should pass everything, got %d", len(got))
	}
	if got := FilterByStatus(ds, ""); len(got) != 10 {
		t.Fatalf("empty status should pass everything, got %d", len(got))
	}
}

func TestFilterByPeriod_UsesEffectiveTime(t *testing.T) {
	ref := at(20, 12)
	lateTaken := at(18, 10) // tomada hace 2 días

	ds := []doses.Dose{
		// programada hace 10 días pero tomada hace 2: entra en week
		{ID: "late", Status: doses.StatusTaken, ScheduledTime: at(10, 8), TakenAt: &lateTaken},
		// programada hace 10 días, nunca tomada: fuera de week
		{ID: "old", Status: doses.StatusMissed, ScheduledTime: at(10, 8)},
	}

	got := FilterByPeriod(ds, PeriodWeek, ref)
	if len(got) != 1 || got[0].ID != "late" {
		t.Fatalf("expected only the late-taken dose, got %+v", got)
	}

	if got := FilterByPeriod(ds, PeriodAll, ref); len(got) != 2 {
		t.Fatalf("'all' should pass everything, got %d", len(got))
	}
}

func TestGroupByDay(t *testing.T) {
	taken := at(2, 22)
	ds := []doses.Dose{
		{ID: "a", Status: doses.StatusTaken, ScheduledTime: at(1, 8), TakenAt: &taken}, // agrupa por takenAt
		{ID: "b", Status: doses.StatusMissed, ScheduledTime: at(2, 8)},
		{ID: "c", Status: doses.StatusMissed, ScheduledTime: at(3, 8)},
	}

	groups := GroupByDay(ds)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(groups))
	}
	day2 := groups[DayLabel(at(2, 0))]
	if len(day2) != 2 {
		t.Fatalf("expected 2 doses on day 2, got %d", len(day2))
	}
	// Orden de entrada preservado dentro del bucket
	if day2[0].ID != "a" || day2[1].ID != "b" {
		t.Fatalf("input order not preserved: %s, %s", day2[0].ID, day2[1].ID)
	}
}

func TestPendingToday(t *testing.T) {
	ref := at(5, 12)
	ds := []doses.Dose{
		{ID: "late", Status: doses.StatusPending, ScheduledTime: at(5, 20)},
		{ID: "early", Status: doses.StatusPending, ScheduledTime: at(5, 8)},
		{ID: "done", Status: doses.StatusTaken, ScheduledTime: at(5, 9)},
		{ID: "tomorrow", Status: doses.StatusPending, ScheduledTime: at(6, 8)},
	}

	got := PendingToday(ds, ref)
	if len(got) != 2 {
		t.Fatalf("expected 2 pending today, got %d", len(got))
	}
	if got[0].ID != "early" || got[1].ID != "late" {
		t.Fatalf("expected chronological order, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestUpcoming(t *testing.T) {
	ref := at(5, 12)
	ds := []doses.Dose{
		{ID: "past", Status: doses.StatusPending, ScheduledTime: at(5, 8)},
		{ID: "in2d", Status: doses.StatusPending, ScheduledTime: at(7, 8)},
		{ID: "in9d", Status: doses.StatusPending, ScheduledTime: at(14, 8)},
		{ID: "taken", Status: doses.StatusTaken, ScheduledTime: at(6, 8)},
	}

	got := Upcoming(ds, ref, 7)
	if len(got) != 1 || got[0].ID != "in2d" {
		t.Fatalf("expected only in2d, got %+v", got)
	}
}

func TestHistory_DescendingWithLimit(t *testing.T) {
	taken := at(4, 9)
	ds := []doses.Dose{
		{ID: "old", Status: doses.StatusMissed, ScheduledTime: at(1, 8)},
		{ID: "newest", Status: doses.StatusTaken, ScheduledTime: at(2, 8), TakenAt: &taken},
		{ID: "mid", Status: doses.StatusSkipped, ScheduledTime: at(3, 8)},
		{ID: "pending", Status: doses.StatusPending, ScheduledTime: at(2, 9)},
	}

	got := History(ds, 0)
	if len(got) != 3 {
		t.Fatalf("pending should be excluded, got %d", len(got))
	}
	// newest ordena por takenAt (día 4), no por scheduledTime (día 2)
	if got[0].ID != "newest" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Fatalf("bad order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}

	if got := History(ds, 2); len(got) != 2 {
		t.Fatalf("limit not applied, got %d", len(got))
	}
}

func TestLastNDays(t *testing.T) {
	ref := at(7, 23)
	taken := at(6, 9)
	ds := []doses.Dose{
		{Status: doses.StatusTaken, ScheduledTime: at(6, 8), TakenAt: &taken},
		{Status: doses.StatusMissed, ScheduledTime: at(6, 20)},
		{Status: doses.StatusMissed, ScheduledTime: at(7, 8)},
		{Status: doses.StatusSkipped, ScheduledTime: at(7, 9)}, // no cuenta
	}

	got := LastNDays(ds, ref, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	if got[0].Date != "2026-03-05" || got[2].Date != "2026-03-07" {
		t.Fatalf("bad date range: %s .. %s", got[0].Date, got[2].Date)
	}
	if got[1].Taken != 1 || got[1].Missed != 1 {
		t.Fatalf("day 6: %+v", got[1])
	}
	if got[2].Taken != 0 || got[2].Missed != 1 {
		t.Fatalf("day 7: %+v", got[2])
	}
}
