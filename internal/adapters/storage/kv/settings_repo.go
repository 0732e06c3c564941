package kv

import (
	"context"
	"encoding/json"

	"receta-segura/internal/domain/settings"
)

type settingsRepo struct {
	store Store
}

func NewSettingsRepo(store Store) settings.Repository {
	return &settingsRepo{store: store}
}

func (r *settingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	raw, ok, err := r.store.GetItem(ctx, KeySettings)
	if err != nil {
		return settings.AppSettings{}, err
	}
	if !ok || raw == "" {
		return settings.Defaults(), nil
	}

	var s settings.AppSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return settings.AppSettings{}, err
	}
	return s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.store.SetItem(ctx, KeySettings, string(raw))
}

func (r *settingsRepo) OnboardingCompleted(ctx context.Context) (bool, error) {
	raw, ok, err := r.store.GetItem(ctx, KeyOnboardingCompleted)
	if err != nil {
		return false, err
	}
	// Centinela literal "true", igual que el cliente original.
	return ok && raw == "true", nil
}

func (r *settingsRepo) CompleteOnboarding(ctx context.Context) error {
	return r.store.SetItem(ctx, KeyOnboardingCompleted, "true")
}

func (r *settingsRepo) Reset(ctx context.Context) error {
	if err := r.store.RemoveItem(ctx, KeySettings); err != nil {
		return err
	}
	return r.store.RemoveItem(ctx, KeyOnboardingCompleted)
}
