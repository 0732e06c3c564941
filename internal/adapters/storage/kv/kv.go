// Package kv implementa el almacén por colecciones completas: cada
// colección vive como un array JSON bajo una clave con namespace, y toda
// mutación es leer la colección entera, modificarla en memoria y
// reescribirla. No hay atomicidad más allá de "una escritura completa
// termina antes de la siguiente lectura"; se asume un único escritor
// activo (la cola de mutaciones de la app).
package kv

import "context"

const (
	KeyTreatments          = "receta_segura:treatments"
	KeyDoses               = "receta_segura:doses"
	KeyPatients            = "receta_segura:patients"
	KeySettings            = "receta_segura:settings"
	KeyOnboardingCompleted = "receta_segura:onboarding_completed"
)

// Store es el backend mínimo clave/valor (equivalente a un AsyncStorage):
// valores string opacos, sin semántica de filas.
type Store interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}
