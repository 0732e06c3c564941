package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	GetByID(ctx context.Context, id string) (Treatment, error)
	List(ctx context.Context) ([]Treatment, error)
	Update(ctx context.Context, t Treatment) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// DoseRemover es lo mínimo que el servicio necesita del almacén de dosis
// para cumplir el borrado en cascada al eliminar un tratamiento.
type DoseRemover interface {
	DeleteByTreatment(ctx context.Context, treatmentID string) error
}
