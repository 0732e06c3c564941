// Package adherence deriva estadísticas a partir de un snapshot en memoria
// de dosis ya acotado por el caller (por tratamiento, por paciente o
// global). Nunca lee almacenamiento: sus resultados son tan frescos como
// el último refresh del snapshot.
package adherence

import (
	"math"
	"sort"
	"time"

	"receta-segura/internal/domain/doses"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

func ValidPeriod(p Period) bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return true
	default:
		return false
	}
}

type Stats struct {
	Total      int `json:"total"`
	Taken      int `json:"taken"`
	Missed     int `json:"missed"`
	Skipped    int `json:"skipped"`
	Pending    int `json:"pending"`
	Percentage int `json:"adherencePercentage"`
}

func count(ds []doses.Dose) Stats {
	st := Stats{Total: len(ds)}
	for _, d := range ds {
		switch d.Status {
		case doses.StatusTaken:
			st.Taken++
		case doses.StatusMissed:
			st.Missed++
		case doses.StatusSkipped:
			st.Skipped++
		case doses.StatusPending:
			st.Pending++
		}
	}
	return st
}

// TreatmentStats calcula el porcentaje sobre el TOTAL de dosis, incluyendo
// pendientes y saltadas en el denominador. Con 6 taken de 10 dosis
// (2 missed, 1 skipped, 1 pending) reporta 60%, no 75%. Es una decisión
// deliberada de la vista de tratamiento; no "corregir".
func TreatmentStats(ds []doses.Dose) Stats {
	st := count(ds)
	if st.Total > 0 {
		st.Percentage = int(math.Round(100 * float64(st.Taken) / float64(st.Total)))
	}
	return st
}

// PeriodStats usa la fórmula de la pantalla de historial: porcentaje sobre
// dosis RESUELTAS (taken + missed), excluyendo skipped y pending del
// denominador. Con los mismos 10 ejemplos de arriba reporta 75%.
// Coexiste con TreatmentStats a propósito: ambas vistas existen.
func PeriodStats(ds []doses.Dose) Stats {
	st := count(ds)
	if resolved := st.Taken + st.Missed; resolved > 0 {
		st.Percentage = int(math.Round(100 * float64(st.Taken) / float64(resolved)))
	}
	return st
}

// FilterByStatus devuelve las dosis con el estado exacto, o todas si
// status == "all".
func FilterByStatus(ds []doses.Dose, status string) []doses.Dose {
	if status == "" || status == "all" {
		return ds
	}
	out := make([]doses.Dose, 0, len(ds))
	for _, d := range ds {
		if string(d.Status) == status {
			out = append(out, d)
		}
	}
	return out
}

// FilterByPeriod filtra por takenAt ?? scheduledTime contra ref-7d (week)
// o ref-30d (month). Una dosis programada hace 10 días pero tomada hace 2
// entra en "week".
func FilterByPeriod(ds []doses.Dose, period Period, ref time.Time) []doses.Dose {
	var cutoff time.Time
	switch period {
	case PeriodWeek:
		cutoff = ref.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		cutoff = ref.Add(-30 * 24 * time.Hour)
	default:
		return ds
	}

	out := make([]doses.Dose, 0, len(ds))
	for _, d := range ds {
		if !d.EffectiveTime().Before(cutoff) {
			out = append(out, d)
		}
	}
	return out
}

// DayLabel es la etiqueta de día calendario usada para agrupar historial.
func DayLabel(t time.Time) string {
	return t.Format("Monday, 02 January 2006")
}

// GroupByDay agrupa por día calendario de takenAt ?? scheduledTime.
// El orden dentro de cada bucket sigue el orden de entrada (los callers
// suelen pre-ordenar descendente antes de agrupar).
func GroupByDay(ds []doses.Dose) map[string][]doses.Dose {
	groups := make(map[string][]doses.Dose)
	for _, d := range ds {
		key := DayLabel(d.EffectiveTime())
		groups[key] = append(groups[key], d)
	}
	return groups
}

// PendingToday devuelve las dosis pendientes cuyo scheduledTime cae en el
// mismo día calendario que ref, ordenadas ascendente.
func PendingToday(ds []doses.Dose, ref time.Time) []doses.Dose {
	y, m, day := ref.Date()

	out := make([]doses.Dose, 0)
	for _, d := range ds {
		if d.Status != doses.StatusPending {
			continue
		}
		dy, dm, dd := d.ScheduledTime.Date()
		if dy == y && dm == m && dd == day {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out
}

// Upcoming devuelve las dosis pendientes con scheduledTime en
// [ref, ref+days], ascendente.
func Upcoming(ds []doses.Dose, ref time.Time, days int) []doses.Dose {
	if days <= 0 {
		days = 7
	}
	limit := ref.AddDate(0, 0, days)

	out := make([]doses.Dose, 0)
	for _, d := range ds {
		if d.Status != doses.StatusPending {
			continue
		}
		if d.ScheduledTime.Before(ref) || d.ScheduledTime.After(limit) {
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out
}

// History devuelve las dosis ya resueltas (status != pending) ordenadas
// descendente por takenAt ?? scheduledTime; limit <= 0 = sin límite.
func History(ds []doses.Dose, limit int) []doses.Dose {
	out := make([]doses.Dose, 0, len(ds))
	for _, d := range ds {
		if d.Status != doses.StatusPending {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveTime().After(out[j].EffectiveTime())
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type DayBreakdown struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Taken  int    `json:"taken"`
	Missed int    `json:"missed"`
}

// LastNDays arma el desglose diario taken/missed de los últimos n días
// terminando en ref (la vista de tarjetas "últimos 7 días").
func LastNDays(ds []doses.Dose, ref time.Time, n int) []DayBreakdown {
	if n <= 0 {
		n = 7
	}

	out := make([]DayBreakdown, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		y, m, dd := day.Date()

		bd := DayBreakdown{Date: day.Format("2006-01-02")}
		for _, d := range ds {
			ey, em, ed := d.EffectiveTime().Date()
			if ey != y || em != m || ed != dd {
				continue
			}
			switch d.Status {
			case doses.StatusTaken:
				bd.Taken++
			case doses.StatusMissed:
				bd.Missed++
			}
		}
		out = append(out, bd)
	}
	return out
}
