package doses

import "time"

// Dose es una toma concreta y fechada de un tratamiento: la unidad que el
// usuario marca como tomada/omitida/saltada. medicationName y dose son un
// snapshot desnormalizado del tratamiento al momento de generar; ediciones
// posteriores del tratamiento no lo actualizan retroactivamente.
type Dose struct {
	ID             string     `json:"id"`
	TreatmentID    string     `json:"treatmentId"` // referencia, no ownership
	MedicationName string     `json:"medicationName"`
	Dose           string     `json:"dose"`
	ScheduledTime  time.Time  `json:"scheduledTime"`
	Status         Status     `json:"status"`
	TakenAt        *time.Time `json:"takenAt,omitempty"` // solo al pasar a taken
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// EffectiveTime devuelve takenAt si existe, si no scheduledTime.
// Es el campo por el que filtran y agrupan las vistas de historial:
// una dosis tomada tarde cuenta para el período en que realmente se tomó.
func (d Dose) EffectiveTime() time.Time {
	if d.TakenAt != nil {
		return *d.TakenAt
	}
	return d.ScheduledTime
}
