package backup_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	mem "receta-segura/internal/adapters/storage/memory"
	"receta-segura/internal/domain/backup"
	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/patients"
	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
)

type fixture struct {
	treatments treatments.Repository
	doses      doses.Repository
	patients   patients.Repository
	settings   settings.Repository
	svc        *backup.Service
}

func newFixture() *fixture {
	f := &fixture{
		treatments: mem.NewTreatmentsRepo(),
		doses:      mem.NewDosesRepo(),
		patients:   mem.NewPatientsRepo(),
		settings:   mem.NewSettingsRepo(),
	}
	f.svc = backup.NewService(f.treatments, f.doses, f.patients, f.settings)
	return f
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	age := 68
	if err := f.patients.Create(ctx, patients.Patient{
		ID:        "p-1",
		Name:      "María García",
		Age:       &age,
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	if err := f.treatments.Create(ctx, treatments.Treatment{
		ID:             "t-1",
		MedicationName: "Losartán",
		Dose:           "50mg",
		Frequency:      treatments.FrequencyDaily,
		Schedules:      []treatments.Schedule{{ID: "s-1", Time: "08:00", Enabled: true}},
		PatientID:      "p-1",
		PatientName:    "María García",
		StartDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
		CreatedAt:      time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("seed treatment: %v", err)
	}

	taken := time.Date(2026, 2, 2, 8, 30, 0, 0, time.UTC)
	if err := f.doses.CreateBatch(ctx, []doses.Dose{
		{ID: "d-1", TreatmentID: "t-1", MedicationName: "Losartán", Dose: "50mg",
			ScheduledTime: time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC),
			Status:        doses.StatusTaken, TakenAt: &taken},
		{ID: "d-2", TreatmentID: "t-1", MedicationName: "Losartán", Dose: "50mg",
			ScheduledTime: time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC),
			Status:        doses.StatusPending},
	}); err != nil {
		t.Fatalf("seed doses: %v", err)
	}

	st := settings.Defaults()
	st.Theme = "dark"
	if err := f.settings.Save(ctx, st); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
}

func TestExport_DocumentShape(t *testing.T) {
	f := newFixture()
	f.seed(t)

	doc, err := f.svc.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if doc.Version != backup.Version {
		t.Fatalf("expected version %q, got %q", backup.Version, doc.Version)
	}
	if doc.ExportDate.IsZero() {
		t.Fatal("export date not set")
	}
	if len(doc.Data.Treatments) != 1 || len(doc.Data.Doses) != 2 || len(doc.Data.Patients) != 1 {
		t.Fatalf("bad collection sizes: %d/%d/%d",
			len(doc.Data.Treatments), len(doc.Data.Doses), len(doc.Data.Patients))
	}
	if doc.Data.Settings.Theme != "dark" {
		t.Fatalf("settings not exported: %+v", doc.Data.Settings)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newFixture()
	src.seed(t)
	ctx := context.Background()

	raw, err := src.svc.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}

	dst := newFixture()
	if err := dst.svc.ImportJSON(ctx, raw); err != nil {
		t.Fatalf("import json: %v", err)
	}

	srcDoc, _ := src.svc.Export(ctx)
	dstDoc, _ := dst.svc.Export(ctx)

	if !reflect.DeepEqual(srcDoc.Data.Treatments, dstDoc.Data.Treatments) {
		t.Fatal("treatments differ after round trip")
	}
	if !reflect.DeepEqual(srcDoc.Data.Doses, dstDoc.Data.Doses) {
		t.Fatal("doses differ after round trip")
	}
	if !reflect.DeepEqual(srcDoc.Data.Patients, dstDoc.Data.Patients) {
		t.Fatal("patients differ after round trip")
	}
	if srcDoc.Data.Settings != dstDoc.Data.Settings {
		t.Fatal("settings differ after round trip")
	}
}

func TestImport_ReplacesExisting(t *testing.T) {
	f := newFixture()
	f.seed(t)
	ctx := context.Background()

	doc := backup.Document{
		Version:    backup.Version,
		ExportDate: time.Now(),
		Data: backup.Data{
			Treatments: []treatments.Treatment{{ID: "t-new", MedicationName: "Ibuprofeno", Dose: "400mg"}},
			Settings:   settings.Defaults(),
		},
	}
	if err := f.svc.Import(ctx, doc); err != nil {
		t.Fatalf("import: %v", err)
	}

	ts, _ := f.treatments.List(ctx)
	if len(ts) != 1 || ts[0].ID != "t-new" {
		t.Fatalf("old collections should be replaced, got %+v", ts)
	}
	ds, _ := f.doses.List(ctx)
	if len(ds) != 0 {
		t.Fatalf("doses should be wiped, got %d", len(ds))
	}
}

func TestImport_RejectsUnknownVersion(t *testing.T) {
	f := newFixture()

	doc := backup.Document{Version: "2.0"}
	if err := f.svc.Import(context.Background(), doc); !errors.Is(err, backup.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestImportJSON_RejectsGarbage(t *testing.T) {
	f := newFixture()

	if err := f.svc.ImportJSON(context.Background(), []byte("{nope")); !errors.Is(err, backup.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestExportJSON_TimestampsISO8601(t *testing.T) {
	f := newFixture()
	f.seed(t)

	raw, err := f.svc.ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("export json: %v", err)
	}

	var parsed struct {
		Version    string `json:"version"`
		ExportDate string `json:"exportDate"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, parsed.ExportDate); err != nil {
		t.Fatalf("exportDate not RFC3339: %q", parsed.ExportDate)
	}
}
