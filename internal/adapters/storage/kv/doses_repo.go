package kv

import (
	"context"
	"sort"

	"receta-segura/internal/domain/doses"
)

type dosesRepo struct {
	store Store
}

func NewDosesRepo(store Store) doses.Repository {
	return &dosesRepo{store: store}
}

func (r *dosesRepo) Create(ctx context.Context, d doses.Dose) error {
	return r.CreateBatch(ctx, []doses.Dose{d})
}

// CreateBatch agrega todas las dosis con UNA sola reescritura de la
// colección; la generación de 30 días no paga una escritura por dosis.
func (r *dosesRepo) CreateBatch(ctx context.Context, ds []doses.Dose) error {
	if len(ds) == 0 {
		return nil
	}
	all, err := readCollection[doses.Dose](ctx, r.store, KeyDoses)
	if err != nil {
		return err
	}
	all = append(all, ds...)
	return writeCollection(ctx, r.store, KeyDoses, all)
}

func (r *dosesRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	all, err := readCollection[doses.Dose](ctx, r.store, KeyDoses)
	if err != nil {
		return doses.Dose{}, err
	}
	for _, d := range all {
		if d.ID == id {
			return d, nil
		}
	}
	return doses.Dose{}, ErrNotFound
}

func (r *dosesRepo) List(ctx context.Context) ([]doses.Dose, error) {
	return readCollection[doses.Dose](ctx, r.store, KeyDoses)
}

func (r *dosesRepo) ListByTreatment(ctx context.Context, treatmentID string) ([]doses.Dose, error) {
	all, err := readCollection[doses.Dose](ctx, r.store, KeyDoses)
	if err != nil {
		return nil, err
	}

	out := make([]doses.Dose, 0)
	for _, d := range all {
		if d.TreatmentID == treatmentID {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})

	return out, nil
}

func (r *dosesRepo) Update(ctx context.Context, d doses.Dose) error {
	all, err := readCollection[doses.Dose](ctx, r.store, KeyDoses)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == d.ID {
			all[i] = d
			return writeCollection(ctx, r.store, KeyDoses, all)
		}
	}
	return ErrNotFound
}

// DeleteByTreatment implementa la cascada del borrado de tratamiento.
// No es error que no exista ninguna dosis para ese tratamiento.
func (r *dosesRepo) DeleteByTreatment(ctx context.Context, treatmentID string) error {
	all, err := readCollection[doses.Dose](ctx, r.store, KeyDoses)
	if err != nil {
		return err
	}

	kept := make([]doses.Dose, 0, len(all))
	for _, d := range all {
		if d.TreatmentID != treatmentID {
			kept = append(kept, d)
		}
	}
	return writeCollection(ctx, r.store, KeyDoses, kept)
}

func (r *dosesRepo) DeleteAll(ctx context.Context) error {
	return writeCollection(ctx, r.store, KeyDoses, []doses.Dose{})
}
