package treatments

// Frequency es informativa: describe el régimen al usuario pero no cambia
// el algoritmo de generación de dosis (eso lo deciden los schedules).
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyEveryHours Frequency = "every_hours"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyAsNeeded   Frequency = "as_needed"
)

func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyEveryHours, FrequencyWeekly, FrequencyAsNeeded:
		return true
	default:
		return false
	}
}
