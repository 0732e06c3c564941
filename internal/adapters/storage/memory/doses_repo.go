package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"receta-segura/internal/domain/doses"
)

type dosesRepo struct {
	mu   sync.RWMutex
	byID map[string]doses.Dose
	seq  []string
}

func NewDosesRepo() doses.Repository {
	return &dosesRepo{
		byID: make(map[string]doses.Dose),
	}
}

func (r *dosesRepo) Create(ctx context.Context, d doses.Dose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(d)
}

func (r *dosesRepo) CreateBatch(ctx context.Context, ds []doses.Dose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range ds {
		if err := r.createLocked(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *dosesRepo) createLocked(d doses.Dose) error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dose id required")
	}
	if _, exists := r.byID[d.ID]; !exists {
		r.seq = append(r.seq, d.ID)
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dosesRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return doses.Dose{}, ErrNotFound
	}
	return d, nil
}

func (r *dosesRepo) List(ctx context.Context) ([]doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doses.Dose, 0, len(r.seq))
	for _, id := range r.seq {
		if d, ok := r.byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *dosesRepo) ListByTreatment(ctx context.Context, treatmentID string) ([]doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doses.Dose, 0)
	for _, id := range r.seq {
		d, ok := r.byID[id]
		if !ok || d.TreatmentID != treatmentID {
			continue
		}
		out = append(out, d)
	}

	// Orden por scheduled_time asc
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})

	return out, nil
}

func (r *dosesRepo) Update(ctx context.Context, d doses.Dose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dose id required")
	}
	if _, exists := r.byID[d.ID]; !exists {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dosesRepo) DeleteByTreatment(ctx context.Context, treatmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.seq[:0]
	for _, id := range r.seq {
		d, ok := r.byID[id]
		if ok && d.TreatmentID == treatmentID {
			delete(r.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	r.seq = kept
	return nil
}

func (r *dosesRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]doses.Dose)
	r.seq = nil
	return nil
}
