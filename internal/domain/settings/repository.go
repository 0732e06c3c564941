package settings

import "context"

type Repository interface {
	// Get devuelve la configuración guardada, o Defaults() si no hay.
	Get(ctx context.Context) (AppSettings, error)
	Save(ctx context.Context, s AppSettings) error

	OnboardingCompleted(ctx context.Context) (bool, error)
	CompleteOnboarding(ctx context.Context) error

	Reset(ctx context.Context) error
}
