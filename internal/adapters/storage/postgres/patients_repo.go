package postgres

import (
	"context"
	"database/sql"
	"strings"

	"receta-segura/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	var age sql.NullInt64
	if p.Age != nil {
		age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, name, age, notes, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		p.ID,
		p.Name,
		age,
		p.Notes,
		p.CreatedAt,
	)
	return err
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, age, notes, created_at
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return patients.Patient{}, ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, age, notes, created_at
		FROM patients
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PatientsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM patients`)
	return err
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var age sql.NullInt64

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&age,
		&p.Notes,
		&p.CreatedAt,
	); err != nil {
		return patients.Patient{}, err
	}

	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}

	return p, nil
}
