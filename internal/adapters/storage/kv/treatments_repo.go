package kv

import (
	"context"

	"receta-segura/internal/domain/treatments"
)

type treatmentsRepo struct {
	store Store
}

func NewTreatmentsRepo(store Store) treatments.Repository {
	return &treatmentsRepo{store: store}
}

// Create agrega al final sin verificar IDs duplicados: la unicidad del ID
// es responsabilidad del caller (uuid por dosis/tratamiento).
func (r *treatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	all, err := readCollection[treatments.Treatment](ctx, r.store, KeyTreatments)
	if err != nil {
		return err
	}
	all = append(all, t)
	return writeCollection(ctx, r.store, KeyTreatments, all)
}

func (r *treatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	all, err := readCollection[treatments.Treatment](ctx, r.store, KeyTreatments)
	if err != nil {
		return treatments.Treatment{}, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, nil
		}
	}
	return treatments.Treatment{}, ErrNotFound
}

func (r *treatmentsRepo) List(ctx context.Context) ([]treatments.Treatment, error) {
	return readCollection[treatments.Treatment](ctx, r.store, KeyTreatments)
}

func (r *treatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	all, err := readCollection[treatments.Treatment](ctx, r.store, KeyTreatments)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == t.ID {
			all[i] = t
			return writeCollection(ctx, r.store, KeyTreatments, all)
		}
	}
	return ErrNotFound
}

func (r *treatmentsRepo) Delete(ctx context.Context, id string) error {
	all, err := readCollection[treatments.Treatment](ctx, r.store, KeyTreatments)
	if err != nil {
		return err
	}

	kept := make([]treatments.Treatment, 0, len(all))
	found := false
	for _, t := range all {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrNotFound
	}
	return writeCollection(ctx, r.store, KeyTreatments, kept)
}

func (r *treatmentsRepo) DeleteAll(ctx context.Context) error {
	return writeCollection(ctx, r.store, KeyTreatments, []treatments.Treatment{})
}
