package settings

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (AppSettings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Save(ctx context.Context, in AppSettings) (AppSettings, error) {
	switch in.Theme {
	case "light", "dark", "auto":
	default:
		return AppSettings{}, ErrInvalidInput
	}
	switch in.Language {
	case "es", "en":
	default:
		return AppSettings{}, ErrInvalidInput
	}
	if in.ReminderMinutesBefore < 0 {
		return AppSettings{}, ErrInvalidInput
	}

	if err := s.repo.Save(ctx, in); err != nil {
		return AppSettings{}, err
	}
	return in, nil
}

func (s *Service) OnboardingCompleted(ctx context.Context) (bool, error) {
	return s.repo.OnboardingCompleted(ctx)
}

func (s *Service) CompleteOnboarding(ctx context.Context) error {
	return s.repo.CompleteOnboarding(ctx)
}
