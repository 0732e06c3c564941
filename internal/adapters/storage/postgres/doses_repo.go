package postgres

import (
	"context"
	"database/sql"
	"strings"

	"receta-segura/internal/domain/doses"
)

type DosesRepo struct {
	db *sql.DB
}

func NewDosesRepo(db *sql.DB) *DosesRepo {
	return &DosesRepo{db: db}
}

const doseColumns = `
	id, treatment_id, medication_name, dose,
	scheduled_time, status, taken_at, notes,
	created_at, updated_at
`

func (r *DosesRepo) Create(ctx context.Context, d doses.Dose) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doses (
			id, treatment_id, medication_name, dose,
			scheduled_time, status, taken_at, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		d.ID,
		d.TreatmentID,
		d.MedicationName,
		d.Dose,
		d.ScheduledTime,
		string(d.Status),
		toNullTime(d.TakenAt),
		d.Notes,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

// CreateBatch inserta todas las dosis en una transacción: o entran todas
// o no entra ninguna (la generación por tratamiento es atómica).
func (r *DosesRepo) CreateBatch(ctx context.Context, ds []doses.Dose) error {
	if len(ds) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, d := range ds {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO doses (
				id, treatment_id, medication_name, dose,
				scheduled_time, status, taken_at, notes,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			d.ID,
			d.TreatmentID,
			d.MedicationName,
			d.Dose,
			d.ScheduledTime,
			string(d.Status),
			toNullTime(d.TakenAt),
			d.Notes,
			d.CreatedAt,
			d.UpdatedAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *DosesRepo) Update(ctx context.Context, d doses.Dose) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE doses
		SET
			status = $2,
			taken_at = $3,
			notes = $4,
			updated_at = $5
		WHERE id = $1
	`,
		d.ID,
		string(d.Status),
		toNullTime(d.TakenAt),
		d.Notes,
		d.UpdatedAt,
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

func (r *DosesRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doses.Dose{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT`+doseColumns+`
		FROM doses
		WHERE id = $1
	`, id)

	d, err := scanDose(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return doses.Dose{}, ErrNotFound
		}
		return doses.Dose{}, err
	}
	return d, nil
}

func (r *DosesRepo) List(ctx context.Context) ([]doses.Dose, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+doseColumns+`
		FROM doses
		ORDER BY scheduled_time ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectDoses(rows)
}

func (r *DosesRepo) ListByTreatment(ctx context.Context, treatmentID string) ([]doses.Dose, error) {
	treatmentID = strings.TrimSpace(treatmentID)
	if treatmentID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT`+doseColumns+`
		FROM doses
		WHERE treatment_id = $1
		ORDER BY scheduled_time ASC
	`, treatmentID)
	if err != nil {
		return nil, err
	}
	return collectDoses(rows)
}

// DeleteByTreatment no distingue entre "tenía dosis" y "no tenía": ambos
// dejan el mismo estado final.
func (r *DosesRepo) DeleteByTreatment(ctx context.Context, treatmentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM doses WHERE treatment_id = $1`, treatmentID)
	return err
}

func (r *DosesRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM doses`)
	return err
}

func scanDose(row rowScanner) (doses.Dose, error) {
	var d doses.Dose
	var status string
	var takenAt sql.NullTime

	if err := row.Scan(
		&d.ID,
		&d.TreatmentID,
		&d.MedicationName,
		&d.Dose,
		&d.ScheduledTime,
		&status,
		&takenAt,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return doses.Dose{}, err
	}

	d.Status = doses.Status(status)
	if takenAt.Valid {
		t := takenAt.Time
		d.TakenAt = &t
	}

	return d, nil
}

func collectDoses(rows *sql.Rows) ([]doses.Dose, error) {
	defer rows.Close()

	out := make([]doses.Dose, 0)
	for rows.Next() {
		d, err := scanDose(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}
