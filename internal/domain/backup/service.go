package backup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/patients"
	"receta-segura/internal/domain/settings"
	"receta-segura/internal/domain/treatments"
)

// Version es el contrato de intercambio; un documento con otra versión
// se rechaza en el import.
const Version = "1.0"

var (
	ErrInvalidDocument = errors.New("invalid backup document")
)

// Document es el formato de respaldo/restauración: un único JSON con
// todas las colecciones. Debe sobrevivir un round-trip con igualdad
// profunda de los datos.
type Document struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Data       Data      `json:"data"`
}

type Data struct {
	Treatments []treatments.Treatment `json:"treatments"`
	Doses      []doses.Dose           `json:"doses"`
	Patients   []patients.Patient     `json:"patients"`
	Settings   settings.AppSettings   `json:"settings"`
}

type Service struct {
	treatments treatments.Repository
	doses      doses.Repository
	patients   patients.Repository
	settings   settings.Repository
	now        func() time.Time
}

func NewService(
	treatmentsRepo treatments.Repository,
	dosesRepo doses.Repository,
	patientsRepo patients.Repository,
	settingsRepo settings.Repository,
) *Service {
	return &Service{
		treatments: treatmentsRepo,
		doses:      dosesRepo,
		patients:   patientsRepo,
		settings:   settingsRepo,
		now:        time.Now,
	}
}

// Export arma el documento completo desde los snapshots actuales.
func (s *Service) Export(ctx context.Context) (Document, error) {
	ts, err := s.treatments.List(ctx)
	if err != nil {
		return Document{}, err
	}
	ds, err := s.doses.List(ctx)
	if err != nil {
		return Document{}, err
	}
	ps, err := s.patients.List(ctx)
	if err != nil {
		return Document{}, err
	}
	st, err := s.settings.Get(ctx)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Version:    Version,
		ExportDate: s.now(),
		Data: Data{
			Treatments: ts,
			Doses:      ds,
			Patients:   ps,
			Settings:   st,
		},
	}, nil
}

// ExportJSON serializa el documento con timestamps ISO-8601.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import reemplaza las colecciones enteras por las del documento.
// No hay merge: restaurar pisa todo lo existente.
func (s *Service) Import(ctx context.Context, doc Document) error {
	if doc.Version != Version {
		return ErrInvalidDocument
	}

	if err := s.treatments.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.doses.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.patients.DeleteAll(ctx); err != nil {
		return err
	}

	for _, t := range doc.Data.Treatments {
		if err := s.treatments.Create(ctx, t); err != nil {
			return err
		}
	}
	if len(doc.Data.Doses) > 0 {
		if err := s.doses.CreateBatch(ctx, doc.Data.Doses); err != nil {
			return err
		}
	}
	for _, p := range doc.Data.Patients {
		if err := s.patients.Create(ctx, p); err != nil {
			return err
		}
	}
	return s.settings.Save(ctx, doc.Data.Settings)
}

// ImportJSON parsea y restaura un documento exportado.
func (s *Service) ImportJSON(ctx context.Context, raw []byte) error {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ErrInvalidDocument
	}
	return s.Import(ctx, doc)
}
