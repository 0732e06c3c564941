package doses

// Status de una toma individual.
// En la práctica la transición es pending -> {taken|missed|skipped},
// aunque el modelo no prohíbe mutaciones posteriores.
type Status string

const (
	StatusPending Status = "pending"
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
	StatusSkipped Status = "skipped"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusTaken, StatusMissed, StatusSkipped:
		return true
	default:
		return false
	}
}
