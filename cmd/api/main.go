package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"receta-segura/internal/adapters/auth/jwtauth"
	"receta-segura/internal/adapters/notify/webhook"
	kvstore "receta-segura/internal/adapters/storage/kv"
	mem "receta-segura/internal/adapters/storage/memory"
	pg "receta-segura/internal/adapters/storage/postgres"
	"receta-segura/internal/config"
	"receta-segura/internal/domain/backup"
	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/patients"
	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
	"receta-segura/internal/platform/logger"
	"receta-segura/internal/platform/seed"
	"receta-segura/internal/router"
)

// @title Receta Segura API
// @version 1.0
// @description API de seguimiento de tratamientos y adherencia a medicación.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "receta-segura",
		Short: "Servidor de seguimiento de medicación",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Puebla el almacén con datos de demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}

			db, kv, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeStorage(db, kv)

			st := buildStores(db, kv)
			seeder := seed.New(st.patients, st.treatments, st.doses, log)
			return seeder.SeedAll(cmd.Context())
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Vuelca el respaldo JSON completo a stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadEnv()
			if err != nil {
				return err
			}

			db, kv, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeStorage(db, kv)

			st := buildStores(db, kv)
			svc := backup.NewService(st.treatments, st.doses, st.patients, st.settings)

			raw, err := svc.ExportJSON(cmd.Context())
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(raw, '\n'))
			return err
		},
	}
}

func runServer() error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}

	db, kv, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStorage(db, kv)

	opts := router.Options{
		Log: log,
		DB:  db,
		KV:  kv,
	}

	if v := jwtauth.NewVerifier(cfg.JWTSecret); v != nil {
		opts.AuthVerifier = v
	} else if !cfg.IsDev() {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}

	if sch := webhook.NewScheduler(cfg.NotifyWebhookURL, cfg.NotifyWebhookTimeout); sch != nil {
		opts.Reminders = sch
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		errc <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}

func loadEnv() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, "receta-segura")
	return cfg, log, nil
}

// openStorage abre el backend configurado: DB_DSN > SQLITE_PATH > DATA_FILE.
// Ambos retornos en nil significa in-memory.
func openStorage(cfg *config.Config) (*sql.DB, kvstore.Store, error) {
	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil, nil
	}
	if cfg.SQLitePath != "" {
		kv, err := kvstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return nil, kv, nil
	}
	if cfg.DataFile != "" {
		kv, err := kvstore.OpenFile(cfg.DataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open data file: %w", err)
		}
		return nil, kv, nil
	}
	return nil, nil, nil
}

func closeStorage(db *sql.DB, kv kvstore.Store) {
	if db != nil {
		_ = db.Close()
	}
	if kv != nil {
		_ = kv.Close()
	}
}

type appStores struct {
	patients   patients.Repository
	treatments treatments.Repository
	doses      doses.Repository
	settings   settings.Repository
}

// buildStores replica la selección de repos del router para los comandos
// que no levantan el servidor.
func buildStores(db *sql.DB, kv kvstore.Store) appStores {
	switch {
	case db != nil:
		return appStores{
			patients:   pg.NewPatientsRepo(db),
			treatments: pg.NewTreatmentsRepo(db),
			doses:      pg.NewDosesRepo(db),
			settings:   pg.NewSettingsRepo(db),
		}
	case kv != nil:
		return appStores{
			patients:   kvstore.NewPatientsRepo(kv),
			treatments: kvstore.NewTreatmentsRepo(kv),
			doses:      kvstore.NewDosesRepo(kv),
			settings:   kvstore.NewSettingsRepo(kv),
		}
	default:
		return appStores{
			patients:   mem.NewPatientsRepo(),
			treatments: mem.NewTreatmentsRepo(),
			doses:      mem.NewDosesRepo(),
			settings:   mem.NewSettingsRepo(),
		}
	}
}
