package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"receta-segura/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	schedules, err := json.Marshal(t.Schedules)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO treatments (
			id, medication_name, dose, frequency, schedules,
			patient_id, patient_name,
			start_date, end_date, notes, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		t.ID,
		t.MedicationName,
		t.Dose,
		string(t.Frequency),
		schedules,
		t.PatientID,
		t.PatientName,
		t.StartDate,
		toNullTime(t.EndDate),
		t.Notes,
		t.IsActive,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	schedules, err := json.Marshal(t.Schedules)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments
		SET
			medication_name = $2,
			dose = $3,
			frequency = $4,
			schedules = $5,
			patient_id = $6,
			patient_name = $7,
			start_date = $8,
			end_date = $9,
			notes = $10,
			is_active = $11,
			updated_at = $12
		WHERE id = $1
	`,
		t.ID,
		t.MedicationName,
		t.Dose,
		string(t.Frequency),
		schedules,
		t.PatientID,
		t.PatientName,
		t.StartDate,
		toNullTime(t.EndDate),
		t.Notes,
		t.IsActive,
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return treatments.Treatment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, medication_name, dose, frequency, schedules,
			patient_id, patient_name,
			start_date, end_date, notes, is_active,
			created_at, updated_at
		FROM treatments
		WHERE id = $1
	`, id)

	t, err := scanTreatment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return treatments.Treatment{}, ErrNotFound
		}
		return treatments.Treatment{}, err
	}
	return t, nil
}

func (r *TreatmentsRepo) List(ctx context.Context) ([]treatments.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, medication_name, dose, frequency, schedules,
			patient_id, patient_name,
			start_date, end_date, notes, is_active,
			created_at, updated_at
		FROM treatments
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM treatments`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTreatment(row rowScanner) (treatments.Treatment, error) {
	var t treatments.Treatment
	var freq string
	var schedules []byte
	var end sql.NullTime

	if err := row.Scan(
		&t.ID,
		&t.MedicationName,
		&t.Dose,
		&freq,
		&schedules,
		&t.PatientID,
		&t.PatientName,
		&t.StartDate,
		&end,
		&t.Notes,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return treatments.Treatment{}, err
	}

	t.Frequency = treatments.Frequency(freq)
	if len(schedules) > 0 {
		if err := json.Unmarshal(schedules, &t.Schedules); err != nil {
			return treatments.Treatment{}, err
		}
	}
	if end.Valid {
		e := end.Time
		t.EndDate = &e
	}

	return t, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
