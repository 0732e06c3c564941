package kv

import (
	"context"

	"receta-segura/internal/domain/patients"
)

type patientsRepo struct {
	store Store
}

func NewPatientsRepo(store Store) patients.Repository {
	return &patientsRepo{store: store}
}

func (r *patientsRepo) Create(ctx context.Context, p patients.Patient) error {
	all, err := readCollection[patients.Patient](ctx, r.store, KeyPatients)
	if err != nil {
		return err
	}
	all = append(all, p)
	return writeCollection(ctx, r.store, KeyPatients, all)
}

func (r *patientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	all, err := readCollection[patients.Patient](ctx, r.store, KeyPatients)
	if err != nil {
		return patients.Patient{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return patients.Patient{}, ErrNotFound
}

func (r *patientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	return readCollection[patients.Patient](ctx, r.store, KeyPatients)
}

func (r *patientsRepo) DeleteAll(ctx context.Context) error {
	return writeCollection(ctx, r.store, KeyPatients, []patients.Patient{})
}
