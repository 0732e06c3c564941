package notify

import (
	"context"
	"time"
)

// Reminder es la solicitud de aviso para una dosis concreta. NotifyAt ya
// viene con el adelanto configurado aplicado (reminderMinutesBefore).
type Reminder struct {
	DoseID         string    `json:"doseId"`
	TreatmentID    string    `json:"treatmentId"`
	MedicationName string    `json:"medicationName"`
	Dose           string    `json:"dose"`
	ScheduledTime  time.Time `json:"scheduledTime"`
	NotifyAt       time.Time `json:"notifyAt"`
}

// ReminderScheduler programa recordatorios en un sistema externo.
// La entrega en sí (push, local, etc.) queda del otro lado del puerto.
type ReminderScheduler interface {
	Schedule(ctx context.Context, r Reminder) error
}
