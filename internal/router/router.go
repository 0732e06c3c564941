package router

import (
	"database/sql"
	"net/http"

	kvstore "receta-segura/internal/adapters/storage/kv"
	mem "receta-segura/internal/adapters/storage/memory"
	pg "receta-segura/internal/adapters/storage/postgres"
	"receta-segura/internal/domain/adherence"
	"receta-segura/internal/domain/backup"
	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/patients"
	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
	"receta-segura/internal/middleware"
	"receta-segura/internal/ports/auth"
	"receta-segura/internal/ports/notify"

	_ "receta-segura/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Log zerolog.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Recordatorios; nil = desactivados.
	Reminders notify.ReminderScheduler

	// Backend de datos, por prioridad:
	// DB != nil => Postgres; KV != nil => archivo/sqlite; si no, in-memory.
	DB *sql.DB
	KV kvstore.Store
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		patientRepo   patients.Repository
		treatmentRepo treatments.Repository
		doseRepo      doses.Repository
		settingsRepo  settings.Repository
	)

	switch {
	case opts.DB != nil:
		patientRepo = pg.NewPatientsRepo(opts.DB)
		treatmentRepo = pg.NewTreatmentsRepo(opts.DB)
		doseRepo = pg.NewDosesRepo(opts.DB)
		settingsRepo = pg.NewSettingsRepo(opts.DB)
	case opts.KV != nil:
		patientRepo = kvstore.NewPatientsRepo(opts.KV)
		treatmentRepo = kvstore.NewTreatmentsRepo(opts.KV)
		doseRepo = kvstore.NewDosesRepo(opts.KV)
		settingsRepo = kvstore.NewSettingsRepo(opts.KV)
	default:
		patientRepo = mem.NewPatientsRepo()
		treatmentRepo = mem.NewTreatmentsRepo()
		doseRepo = mem.NewDosesRepo()
		settingsRepo = mem.NewSettingsRepo()
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientRepo)
	settingsSvc := settings.NewService(settingsRepo)
	treatmentsSvc := treatments.NewService(treatmentRepo, doseRepo)

	generator := doses.NewGenerator(opts.Log)
	dosesSvc := doses.NewService(doseRepo, generator)
	if opts.Reminders != nil {
		dosesSvc = dosesSvc.WithReminders(opts.Reminders, settingsRepo)
	}

	backupSvc := backup.NewService(treatmentRepo, doseRepo, patientRepo, settingsRepo)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc)
	treatments.RegisterRoutes(r, treatmentsSvc, dosesSvc)
	doses.RegisterRoutes(r, dosesSvc, treatmentsSvc)
	adherence.RegisterRoutes(r, dosesSvc, treatmentsSvc)
	settings.RegisterRoutes(r, settingsSvc)
	backup.RegisterRoutes(r, backupSvc)

	return r
}
