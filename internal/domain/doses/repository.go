package doses

import "context"

type Repository interface {
	Create(ctx context.Context, d Dose) error
	CreateBatch(ctx context.Context, ds []Dose) error
	GetByID(ctx context.Context, id string) (Dose, error)
	List(ctx context.Context) ([]Dose, error)
	ListByTreatment(ctx context.Context, treatmentID string) ([]Dose, error)
	Update(ctx context.Context, d Dose) error
	DeleteByTreatment(ctx context.Context, treatmentID string) error
	DeleteAll(ctx context.Context) error
}
