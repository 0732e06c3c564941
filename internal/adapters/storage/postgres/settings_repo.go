package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"receta-segura/internal/domain/settings"
)

// SettingsRepo guarda la configuración como una fila única con el objeto
// serializado, más un flag de onboarding. No amerita tabla por campo.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

const settingsRowID = "app"

func (r *SettingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT payload FROM app_settings WHERE id = $1
	`, settingsRowID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return settings.Defaults(), nil
		}
		return settings.AppSettings{}, err
	}

	var s settings.AppSettings
	if err := json.Unmarshal(payload, &s); err != nil {
		return settings.AppSettings{}, err
	}
	return s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO app_settings (id, payload)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`, settingsRowID, payload)
	return err
}

func (r *SettingsRepo) OnboardingCompleted(ctx context.Context) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT onboarding_completed FROM app_flags WHERE id = $1
	`, settingsRowID)

	var done bool
	if err := row.Scan(&done); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return done, nil
}

func (r *SettingsRepo) CompleteOnboarding(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_flags (id, onboarding_completed)
		VALUES ($1, TRUE)
		ON CONFLICT (id) DO UPDATE SET onboarding_completed = TRUE
	`, settingsRowID)
	return err
}

func (r *SettingsRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_settings WHERE id = $1`, settingsRowID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM app_flags WHERE id = $1`, settingsRowID)
	return err
}
