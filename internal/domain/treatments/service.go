package treatments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo  Repository
	doses DoseRemover
	now   func() time.Time
}

func NewService(repo Repository, doses DoseRemover) *Service {
	return &Service{
		repo:  repo,
		doses: doses,
		now:   time.Now,
	}
}

type ScheduleInput struct {
	Time    string
	Enabled *bool // nil = habilitado
}

type CreateInput struct {
	MedicationName string
	Dose           string
	Frequency      Frequency
	Schedules      []ScheduleInput
	PatientID      string
	PatientName    string
	StartDate      time.Time
	EndDate        *time.Time
	Notes          string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Treatment, error) {
	if strings.TrimSpace(in.MedicationName) == "" {
		return Treatment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Dose) == "" {
		return Treatment{}, ErrInvalidInput
	}
	if len(in.Schedules) == 0 {
		return Treatment{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return Treatment{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Treatment{}, ErrInvalidInput
	}

	freq := in.Frequency
	if freq == "" {
		freq = FrequencyDaily
	}
	if !ValidFrequency(freq) {
		return Treatment{}, ErrInvalidInput
	}

	schedules := make([]Schedule, 0, len(in.Schedules))
	for _, sc := range in.Schedules {
		if strings.TrimSpace(sc.Time) == "" {
			return Treatment{}, ErrInvalidInput
		}
		enabled := true
		if sc.Enabled != nil {
			enabled = *sc.Enabled
		}
		schedules = append(schedules, Schedule{
			ID:      uuid.NewString(),
			Time:    strings.TrimSpace(sc.Time),
			Enabled: enabled,
		})
	}

	now := s.now()
	patientID := strings.TrimSpace(in.PatientID)
	if patientID == "" {
		// El flujo de alta rápida no exige paciente registrado previamente.
		patientID = uuid.NewString()
	}

	t := Treatment{
		ID:             uuid.NewString(),
		MedicationName: strings.TrimSpace(in.MedicationName),
		Dose:           strings.TrimSpace(in.Dose),
		Frequency:      freq,
		Schedules:      schedules,
		PatientID:      patientID,
		PatientName:    strings.TrimSpace(in.PatientName),
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Notes:          strings.TrimSpace(in.Notes),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Treatment, error) {
	return s.repo.List(ctx)
}

// ListActive filtra sobre la colección completa; el snapshot siempre se
// materializa entero (ver contrato del almacén).
func (s *Service) ListActive(ctx context.Context) ([]Treatment, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Treatment, 0, len(all))
	for _, t := range all {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	MedicationName *string
	Dose           *string
	Frequency      *Frequency
	PatientName    *string
	Notes          *string
	IsActive       *bool
	EndDate        *time.Time
	ClearEndDate   bool
}

// Update aplica un parche sobre el tratamiento y bumpa updatedAt.
// Las dosis ya generadas NO se tocan: son un snapshot desnormalizado.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrInvalidInput
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}

	if in.MedicationName != nil {
		if strings.TrimSpace(*in.MedicationName) == "" {
			return Treatment{}, ErrInvalidInput
		}
		t.MedicationName = strings.TrimSpace(*in.MedicationName)
	}
	if in.Dose != nil {
		if strings.TrimSpace(*in.Dose) == "" {
			return Treatment{}, ErrInvalidInput
		}
		t.Dose = strings.TrimSpace(*in.Dose)
	}
	if in.Frequency != nil {
		if !ValidFrequency(*in.Frequency) {
			return Treatment{}, ErrInvalidInput
		}
		t.Frequency = *in.Frequency
	}
	if in.PatientName != nil {
		t.PatientName = strings.TrimSpace(*in.PatientName)
	}
	if in.Notes != nil {
		t.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if in.ClearEndDate {
		t.EndDate = nil
	} else if in.EndDate != nil {
		if in.EndDate.Before(t.StartDate) {
			return Treatment{}, ErrInvalidInput
		}
		t.EndDate = in.EndDate
	}

	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

// Delete elimina el tratamiento y, en cascada, todas sus dosis.
// La cascada es responsabilidad explícita de este servicio, no del almacén.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.doses.DeleteByTreatment(ctx, id)
}
