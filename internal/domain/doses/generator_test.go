package doses

import (
	"fmt"
	"testing"
	"time"

	"receta-segura/internal/domain/treatments"

	"github.com/rs/zerolog"
)

func testGenerator() *Generator {
	g := NewGenerator(zerolog.Nop())
	g.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	seq := 0
	g.newID = func() string {
		seq++
		return fmt.Sprintf("dose-%d", seq)
	}
	return g
}

func baseTreatment() treatments.Treatment {
	return treatments.Treatment{
		ID:             "t-1",
		MedicationName: "Losartán",
		Dose:           "50mg",
		Frequency:      treatments.FrequencyDaily,
		Schedules: []treatments.Schedule{
			{ID: "s-1", Time: "08:00", Enabled: true},
		},
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestGenerate_OneSchedulePerDay(t *testing.T) {
	g := testGenerator()

	out := g.Generate(baseTreatment(), 30)

	if len(out) != 30 {
		t.Fatalf("expected 30 doses, got %d", len(out))
	}
	for i, d := range out {
		if d.Status != StatusPending {
			t.Fatalf("dose %d: expected pending, got %s", i, d.Status)
		}
		if d.TreatmentID != "t-1" {
			t.Fatalf("dose %d: wrong treatment id %q", i, d.TreatmentID)
		}
		if d.MedicationName != "Losartán" || d.Dose != "50mg" {
			t.Fatalf("dose %d: snapshot not copied", i)
		}
		if s := d.ScheduledTime; s.Hour() != 8 || s.Minute() != 0 || s.Second() != 0 || s.Nanosecond() != 0 {
			t.Fatalf("dose %d: scheduled at %v, expected 08:00:00.0", i, s)
		}
	}

	first, last := out[0].ScheduledTime, out[29].ScheduledTime
	if first.Day() != 1 {
		t.Fatalf("first dose on day %d, expected 1", first.Day())
	}
	if last.Day() != 30 {
		t.Fatalf("last dose on day %d, expected 30", last.Day())
	}
}

func TestGenerate_EndDateStopsGeneration(t *testing.T) {
	g := testGenerator()

	tr := baseTreatment()
	end := tr.StartDate.AddDate(0, 0, 9) // día 10 inclusive
	tr.EndDate = &end

	out := g.Generate(tr, 30)

	if len(out) != 10 {
		t.Fatalf("expected 10 doses up to end date, got %d", len(out))
	}
	for _, d := range out {
		if d.ScheduledTime.After(end.Add(24 * time.Hour)) {
			t.Fatalf("dose beyond end date: %v", d.ScheduledTime)
		}
	}
}

func TestGenerate_DisabledScheduleExcluded(t *testing.T) {
	g := testGenerator()

	tr := baseTreatment()
	tr.Schedules = []treatments.Schedule{
		{ID: "s-1", Time: "08:00", Enabled: true},
		{ID: "s-2", Time: "20:00", Enabled: false},
	}

	out := g.Generate(tr, 30)

	if len(out) != 30 {
		t.Fatalf("expected 30 doses (solo horario habilitado), got %d", len(out))
	}
	for _, d := range out {
		if d.ScheduledTime.Hour() == 20 {
			t.Fatalf("generated dose for disabled schedule at %v", d.ScheduledTime)
		}
	}
}

func TestGenerate_MalformedScheduleSkippedOnly(t *testing.T) {
	g := testGenerator()

	tr := baseTreatment()
	tr.Schedules = []treatments.Schedule{
		{ID: "s-1", Time: "08:00", Enabled: true},
		{ID: "s-2", Time: "25:99", Enabled: true}, // fuera de rango
		{ID: "s-3", Time: "20:00", Enabled: true},
	}

	out := g.Generate(tr, 5)

	// 5 días x 2 horarios válidos; el malformado no tumba el resto
	if len(out) != 10 {
		t.Fatalf("expected 10 doses, got %d", len(out))
	}
}

func TestGenerate_OrderByDayThenSchedule(t *testing.T) {
	g := testGenerator()

	tr := baseTreatment()
	tr.Schedules = []treatments.Schedule{
		{ID: "s-1", Time: "20:00", Enabled: true},
		{ID: "s-2", Time: "08:00", Enabled: true},
	}

	out := g.Generate(tr, 2)

	if len(out) != 4 {
		t.Fatalf("expected 4 doses, got %d", len(out))
	}
	// Dentro del día manda el orden de declaración, no el reloj
	if out[0].ScheduledTime.Hour() != 20 || out[1].ScheduledTime.Hour() != 8 {
		t.Fatalf("schedule order not preserved: %v %v", out[0].ScheduledTime, out[1].ScheduledTime)
	}
	if !out[2].ScheduledTime.After(out[1].ScheduledTime) {
		t.Fatalf("day 2 doses should come after day 1")
	}
}

func TestGenerate_UniqueIDsAcrossRuns(t *testing.T) {
	g := NewGenerator(zerolog.Nop())

	tr := baseTreatment()
	seen := map[string]bool{}
	for run := 0; run < 2; run++ {
		for _, d := range g.Generate(tr, 10) {
			if seen[d.ID] {
				t.Fatalf("duplicated dose id %q across runs", d.ID)
			}
			seen[d.ID] = true
		}
	}
}

func TestGenerate_NonPositiveHorizonUsesDefault(t *testing.T) {
	g := testGenerator()

	out := g.Generate(baseTreatment(), 0)
	if len(out) != treatments.DefaultHorizonDays {
		t.Fatalf("expected %d doses, got %d", treatments.DefaultHorizonDays, len(out))
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
		hh, mm  int
	}{
		{"08:00", false, 8, 0},
		{"7:30", false, 7, 30},
		{"23:59", false, 23, 59},
		{"24:00", true, 0, 0},
		{"08:60", true, 0, 0},
		{"garbage", true, 0, 0},
		{"", true, 0, 0},
	}

	for _, c := range cases {
		hh, mm, err := parseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): %v", c.in, err)
			continue
		}
		if hh != c.hh || mm != c.mm {
			t.Errorf("parseClock(%q) = %d:%d, expected %d:%d", c.in, hh, mm, c.hh, c.mm)
		}
	}
}
