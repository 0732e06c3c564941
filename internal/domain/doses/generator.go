package doses

import (
	"fmt"
	"time"

	"receta-segura/internal/domain/treatments"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Generator expande un tratamiento en dosis discretas, una por cada par
// (día del horizonte, horario habilitado), todas en estado pending.
type Generator struct {
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Generate materializa las dosis de `t` para `horizonDays` días desde
// startDate (inclusive). Reglas:
//   - si hay endDate y el día actual la supera, la generación TERMINA
//     (no salta al siguiente día)
//   - horarios deshabilitados no emiten dosis
//   - horario con formato inválido: se salta SOLO ese horario y se deja
//     warning en el log; el resto del tratamiento se genera igual
//
// El orden de salida es por día y, dentro del día, el orden en que los
// horarios aparecen en el tratamiento. Los IDs salen de uuid, así que dos
// generaciones consecutivas del mismo tratamiento nunca colisionan.
func (g *Generator) Generate(t treatments.Treatment, horizonDays int) []Dose {
	if horizonDays <= 0 {
		horizonDays = treatments.DefaultHorizonDays
	}

	now := g.now()
	out := make([]Dose, 0, horizonDays*len(t.Schedules))

	for day := 0; day < horizonDays; day++ {
		currentDate := t.StartDate.AddDate(0, 0, day)

		if t.EndDate != nil && currentDate.After(*t.EndDate) {
			break
		}

		for _, sc := range t.Schedules {
			if !sc.Enabled {
				continue
			}

			hh, mm, err := parseClock(sc.Time)
			if err != nil {
				g.log.Warn().
					Str("treatment_id", t.ID).
					Str("schedule_id", sc.ID).
					Str("time", sc.Time).
					Msg("skipping schedule with malformed time")
				continue
			}

			scheduledTime := time.Date(
				currentDate.Year(), currentDate.Month(), currentDate.Day(),
				hh, mm, 0, 0, currentDate.Location(),
			)

			out = append(out, Dose{
				ID:             g.newID(),
				TreatmentID:    t.ID,
				MedicationName: t.MedicationName,
				Dose:           t.Dose,
				ScheduledTime:  scheduledTime,
				Status:         StatusPending,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
		}
	}

	return out
}

// parseClock valida "HH:mm" en 24h (acepta también "H:mm").
func parseClock(s string) (hh, mm int, err error) {
	if _, e := fmt.Sscanf(s, "%d:%d", &hh, &mm); e != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, e)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	return hh, mm, nil
}
