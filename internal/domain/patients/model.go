package patients

import "time"

// Patient representa a la persona que recibe los tratamientos.
// patientName se duplica en Treatment/Dose por conveniencia de las pantallas;
// no hay integridad referencial más allá de la convención.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       *int      `json:"age,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
