package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/patients"
	"receta-segura/internal/domain/treatments"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Seeder puebla los almacenes con datos de demo: dos pacientes, cinco
// tratamientos y sus dosis, con el pasado rellenado de forma probabilística
// (75% tomadas, 15% omitidas, 10% saltadas).
type Seeder struct {
	patients   patients.Repository
	treatments treatments.Repository
	doses      doses.Repository
	log        zerolog.Logger

	now  func() time.Time
	rand *rand.Rand
}

func New(p patients.Repository, t treatments.Repository, d doses.Repository, log zerolog.Logger) *Seeder {
	return &Seeder{
		patients:   p,
		treatments: t,
		doses:      d,
		log:        log,
		now:        time.Now,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock fija reloj y fuente aleatoria (para tests deterministas).
func (s *Seeder) WithClock(now func() time.Time, r *rand.Rand) *Seeder {
	s.now = now
	s.rand = r
	return s
}

// SeedAll limpia los almacenes y genera el set completo de demo.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.log.Info().Msg("generando datos de prueba")

	if err := s.clearAll(ctx); err != nil {
		return fmt.Errorf("seed: clear: %w", err)
	}

	ps, err := s.seedPatients(ctx)
	if err != nil {
		return fmt.Errorf("seed: patients: %w", err)
	}
	s.log.Info().Int("count", len(ps)).Msg("pacientes creados")

	ts, err := s.seedTreatments(ctx, ps)
	if err != nil {
		return fmt.Errorf("seed: treatments: %w", err)
	}
	s.log.Info().Int("count", len(ts)).Msg("tratamientos creados")

	n, err := s.seedDoses(ctx, ts)
	if err != nil {
		return fmt.Errorf("seed: doses: %w", err)
	}
	s.log.Info().Int("count", n).Msg("dosis generadas")

	return nil
}

// HasData responde si ya hay tratamientos (para no re-sembrar al arrancar).
func (s *Seeder) HasData(ctx context.Context) (bool, error) {
	ts, err := s.treatments.List(ctx)
	if err != nil {
		return false, err
	}
	return len(ts) > 0, nil
}

func (s *Seeder) clearAll(ctx context.Context) error {
	if err := s.doses.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.treatments.DeleteAll(ctx); err != nil {
		return err
	}
	return s.patients.DeleteAll(ctx)
}

func (s *Seeder) seedPatients(ctx context.Context) ([]patients.Patient, error) {
	now := s.now()
	age1, age2 := 68, 45

	ps := []patients.Patient{
		{
			ID:        uuid.NewString(),
			Name:      "María García",
			Age:       &age1,
			Notes:     "Paciente con hipertensión y diabetes",
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			Name:      "Juan Pérez",
			Age:       &age2,
			Notes:     "Tratamiento post-operatorio",
			CreatedAt: now,
		},
	}

	for _, p := range ps {
		if err := s.patients.Create(ctx, p); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func (s *Seeder) seedTreatments(ctx context.Context, ps []patients.Patient) ([]treatments.Treatment, error) {
	now := s.now()
	startDate := now.AddDate(0, 0, -7) // comenzó hace 7 días
	endIn7 := now.AddDate(0, 0, 7)
	endIn10 := now.AddDate(0, 0, 10)

	maria, juan := ps[0], ps[1]

	ts := []treatments.Treatment{
		{
			ID:             uuid.NewString(),
			MedicationName: "Losartán",
			Dose:           "50mg",
			Frequency:      treatments.FrequencyDaily,
			Schedules: []treatments.Schedule{
				{ID: uuid.NewString(), Time: "08:00", Enabled: true},
				{ID: uuid.NewString(), Time: "20:00", Enabled: true},
			},
			PatientID:   maria.ID,
			PatientName: maria.Name,
			StartDate:   startDate,
			Notes:       "Para controlar la presión arterial",
			IsActive:    true,
			CreatedAt:   startDate,
			UpdatedAt:   now,
		},
		{
			ID:             uuid.NewString(),
			MedicationName: "Metformina",
			Dose:           "850mg",
			Frequency:      treatments.FrequencyDaily,
			Schedules: []treatments.Schedule{
				{ID: uuid.NewString(), Time: "07:30", Enabled: true},
				{ID: uuid.NewString(), Time: "19:30", Enabled: true},
			},
			PatientID:   maria.ID,
			PatientName: maria.Name,
			StartDate:   startDate,
			Notes:       "Para control de diabetes. Tomar con alimentos",
			IsActive:    true,
			CreatedAt:   startDate,
			UpdatedAt:   now,
		},
		{
			ID:             uuid.NewString(),
			MedicationName: "Atorvastatina",
			Dose:           "20mg",
			Frequency:      treatments.FrequencyDaily,
			Schedules: []treatments.Schedule{
				{ID: uuid.NewString(), Time: "22:00", Enabled: true},
			},
			PatientID:   maria.ID,
			PatientName: maria.Name,
			StartDate:   startDate,
			Notes:       "Para control del colesterol. Tomar antes de dormir",
			IsActive:    true,
			CreatedAt:   startDate,
			UpdatedAt:   now,
		},
		{
			ID:             uuid.NewString(),
			MedicationName: "Amoxicilina",
			Dose:           "500mg",
			Frequency:      treatments.FrequencyDaily,
			Schedules: []treatments.Schedule{
				{ID: uuid.NewString(), Time: "09:00", Enabled: true},
				{ID: uuid.NewString(), Time: "15:00", Enabled: true},
				{ID: uuid.NewString(), Time: "21:00", Enabled: true},
			},
			PatientID:   juan.ID,
			PatientName: juan.Name,
			StartDate:   startDate,
			EndDate:     &endIn7,
			Notes:       "Antibiótico post-operatorio por 14 días",
			IsActive:    true,
			CreatedAt:   startDate,
			UpdatedAt:   now,
		},
		{
			ID:             uuid.NewString(),
			MedicationName: "Ibuprofeno",
			Dose:           "400mg",
			Frequency:      treatments.FrequencyAsNeeded,
			Schedules: []treatments.Schedule{
				{ID: uuid.NewString(), Time: "10:00", Enabled: true},
				{ID: uuid.NewString(), Time: "18:00", Enabled: true},
			},
			PatientID:   juan.ID,
			PatientName: juan.Name,
			StartDate:   startDate,
			EndDate:     &endIn10,
			Notes:       "Para el dolor. Solo si es necesario",
			IsActive:    true,
			CreatedAt:   startDate,
			UpdatedAt:   now,
		},
	}

	for _, t := range ts {
		if err := s.treatments.Create(ctx, t); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (s *Seeder) seedDoses(ctx context.Context, ts []treatments.Treatment) (int, error) {
	now := s.now()
	total := 0

	for _, t := range ts {
		effectiveEnd := now.AddDate(0, 0, 30)
		if t.EndDate != nil {
			effectiveEnd = *t.EndDate
		}

		days := int(ceilDiv(effectiveEnd.Sub(t.StartDate), 24*time.Hour))
		if days > 30 {
			days = 30
		}

		batch := make([]doses.Dose, 0, days*len(t.Schedules))
		for day := 0; day < days; day++ {
			currentDate := t.StartDate.AddDate(0, 0, day)

			for _, sc := range t.Schedules {
				if !sc.Enabled {
					continue
				}

				var hh, mm int
				if _, err := fmt.Sscanf(sc.Time, "%d:%d", &hh, &mm); err != nil {
					continue
				}

				scheduledTime := time.Date(
					currentDate.Year(), currentDate.Month(), currentDate.Day(),
					hh, mm, 0, 0, currentDate.Location(),
				)

				d := doses.Dose{
					ID:             uuid.NewString(),
					TreatmentID:    t.ID,
					MedicationName: t.MedicationName,
					Dose:           t.Dose,
					ScheduledTime:  scheduledTime,
					Status:         doses.StatusPending,
					CreatedAt:      scheduledTime,
					UpdatedAt:      scheduledTime,
				}

				// Las dosis pasadas se rellenan de forma probabilística para
				// que las vistas de adherencia tengan algo que mostrar.
				if scheduledTime.Before(now) {
					switch r := s.rand.Float64(); {
					case r < 0.75:
						d.Status = doses.StatusTaken
						takenAt := scheduledTime.Add(time.Duration(s.rand.Float64() * float64(time.Hour)))
						d.TakenAt = &takenAt
						d.UpdatedAt = takenAt
					case r < 0.90:
						d.Status = doses.StatusMissed
					default:
						d.Status = doses.StatusSkipped
					}
				}

				batch = append(batch, d)
			}
		}

		if err := s.doses.CreateBatch(ctx, batch); err != nil {
			return total, err
		}
		total += len(batch)
	}

	return total, nil
}

func ceilDiv(d, unit time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + unit - 1) / unit)
}
