package memory

import (
	"context"
	"sync"

	"receta-segura/internal/domain/settings"
)

type settingsRepo struct {
	mu         sync.RWMutex
	current    *settings.AppSettings
	onboarding bool
}

func NewSettingsRepo() settings.Repository {
	return &settingsRepo{}
}

func (r *settingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return settings.Defaults(), nil
	}
	return *r.current, nil
}

func (r *settingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = &s
	return nil
}

func (r *settingsRepo) OnboardingCompleted(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.onboarding, nil
}

func (r *settingsRepo) CompleteOnboarding(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onboarding = true
	return nil
}

func (r *settingsRepo) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
	r.onboarding = false
	return nil
}
