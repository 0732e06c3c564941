package doses

import (
	"context"
	"errors"
	"strings"
	"time"

	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
	"receta-segura/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo      Repository
	generator *Generator
	now       func() time.Time

	// opcionales; nil = recordatorios desactivados
	reminders notify.ReminderScheduler
	prefs     settings.Repository
}

func NewService(repo Repository, generator *Generator) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		now:       time.Now,
	}
}

// WithReminders activa la programación de recordatorios al generar dosis.
// prefs aporta notificationsEnabled y reminderMinutesBefore.
func (s *Service) WithReminders(sch notify.ReminderScheduler, prefs settings.Repository) *Service {
	s.reminders = sch
	s.prefs = prefs
	return s
}

// GenerateForTreatment materializa y persiste las dosis del horizonte.
// Devuelve cuántas se generaron. Implementa treatments.DoseGenerator.
func (s *Service) GenerateForTreatment(ctx context.Context, t treatments.Treatment, horizonDays int) (int, error) {
	generated := s.generator.Generate(t, horizonDays)
	if len(generated) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateBatch(ctx, generated); err != nil {
		return 0, err
	}
	s.scheduleReminders(ctx, generated)
	return len(generated), nil
}

// scheduleReminders es best-effort: un recordatorio que no se pudo
// programar no invalida la generación, solo deja warning en el log.
func (s *Service) scheduleReminders(ctx context.Context, ds []Dose) {
	if s.reminders == nil {
		return
	}

	prefs := settings.Defaults()
	if s.prefs != nil {
		if loaded, err := s.prefs.Get(ctx); err == nil {
			prefs = loaded
		}
	}
	if !prefs.NotificationsEnabled {
		return
	}

	now := s.now()
	before := time.Duration(prefs.ReminderMinutesBefore) * time.Minute

	for _, d := range ds {
		if !d.ScheduledTime.After(now) {
			continue
		}
		r := notify.Reminder{
			DoseID:         d.ID,
			TreatmentID:    d.TreatmentID,
			MedicationName: d.MedicationName,
			Dose:           d.Dose,
			ScheduledTime:  d.ScheduledTime,
			NotifyAt:       d.ScheduledTime.Add(-before),
		}
		if err := s.reminders.Schedule(ctx, r); err != nil {
			s.generator.log.Warn().
				Err(err).
				Str("dose_id", d.ID).
				Msg("could not schedule reminder")
		}
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dose{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Dose, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByTreatment(ctx context.Context, treatmentID string) ([]Dose, error) {
	treatmentID = strings.TrimSpace(treatmentID)
	if treatmentID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByTreatment(ctx, treatmentID)
}

// MarkTaken marca la dosis como tomada y fija takenAt = ahora.
func (s *Service) MarkTaken(ctx context.Context, id, notes string) (Dose, error) {
	now := s.now()
	return s.mark(ctx, id, notes, StatusTaken, &now)
}

// MarkMissed marca la dosis como omitida. No se asigna automáticamente
// a dosis vencidas: siempre es una acción explícita del usuario.
func (s *Service) MarkMissed(ctx context.Context, id, notes string) (Dose, error) {
	return s.mark(ctx, id, notes, StatusMissed, nil)
}

// MarkSkipped marca la dosis como saltada intencionalmente.
func (s *Service) MarkSkipped(ctx context.Context, id, notes string) (Dose, error) {
	return s.mark(ctx, id, notes, StatusSkipped, nil)
}

func (s *Service) mark(ctx context.Context, id, notes string, status Status, takenAt *time.Time) (Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dose{}, ErrInvalidInput
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dose{}, err
	}

	d.Status = status
	if takenAt != nil {
		// takenAt solo se asigna al transicionar a taken; las demás marcas
		// no tocan el valor previo (mismo merge parcial que el almacén).
		d.TakenAt = takenAt
	}
	if strings.TrimSpace(notes) != "" {
		d.Notes = strings.TrimSpace(notes)
	}
	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Dose{}, err
	}
	return d, nil
}
