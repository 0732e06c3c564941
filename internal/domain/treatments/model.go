package treatments

import "time"

// Schedule es un horario de toma dentro del día (ej: 08:00).
// Pertenece en exclusiva a su Treatment (embebido, sin compartir).
type Schedule struct {
	ID      string `json:"id"`
	Time    string `json:"time"` // Formato HH:mm (24h)
	Enabled bool   `json:"enabled"`
}

// Treatment representa un régimen de medicación con uno o más horarios
// diarios sobre un rango de fechas. Los tags JSON son el contrato
// persistido (colecciones completas serializadas) y de exportación.
type Treatment struct {
	ID             string     `json:"id"`
	MedicationName string     `json:"medicationName"`
	Dose           string     `json:"dose"` // texto libre: "500mg", "2 tabletas"
	Frequency      Frequency  `json:"frequency"`
	Schedules      []Schedule `json:"schedules"`
	PatientID      string     `json:"patientId"`
	PatientName    string     `json:"patientName"`
	StartDate      time.Time  `json:"startDate"` // inclusive
	EndDate        *time.Time `json:"endDate,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// EnabledSchedules devuelve los horarios habilitados en el orden declarado.
func (t Treatment) EnabledSchedules() []Schedule {
	out := make([]Schedule, 0, len(t.Schedules))
	for _, sc := range t.Schedules {
		if sc.Enabled {
			out = append(out, sc)
		}
	}
	return out
}
