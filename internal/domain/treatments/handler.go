package treatments

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"receta-segura/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// DoseGenerator es lo que el alta de tratamiento necesita para materializar
// las dosis del horizonte; lo implementa el servicio de dosis.
type DoseGenerator interface {
	GenerateForTreatment(ctx context.Context, t Treatment, horizonDays int) (int, error)
}

// DefaultHorizonDays es la ventana por defecto de generación de dosis.
const DefaultHorizonDays = 30

func RegisterRoutes(r chi.Router, svc *Service, generator DoseGenerator) {
	r.Route("/treatments", func(tr chi.Router) {
		tr.Post("/", createTreatmentHandler(svc, generator))
		tr.Get("/", listTreatmentsHandler(svc))
		tr.Get("/{treatmentID}", getTreatmentHandler(svc))
		tr.Patch("/{treatmentID}", updateTreatmentHandler(svc))
		tr.Delete("/{treatmentID}", deleteTreatmentHandler(svc))
	})
}

type scheduleRequest struct {
	Time    string `json:"time"` // HH:mm
	Enabled *bool  `json:"enabled"`
}

type createTreatmentRequest struct {
	MedicationName string            `json:"medication_name"`
	Dose           string            `json:"dose"`
	Frequency      Frequency         `json:"frequency" enums:"daily,every_hours,weekly,as_needed"`
	Schedules      []scheduleRequest `json:"schedules"`
	PatientID      string            `json:"patient_id"`
	PatientName    string            `json:"patient_name"`
	StartDate      string            `json:"start_date"` // YYYY-MM-DD
	EndDate        string            `json:"end_date"`   // YYYY-MM-DD opcional
	Notes          string            `json:"notes"`
}

type createTreatmentResponse struct {
	Treatment      Treatment `json:"treatment"`
	GeneratedDoses int       `json:"generated_doses"`
}

// createTreatmentHandler godoc
// @Summary Crear tratamiento
// @Description Registra un tratamiento y materializa sus dosis para los próximos 30 días. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createTreatmentRequest true "Datos del tratamiento; fechas en YYYY-MM-DD, horarios en HH:mm"
// @Success 201 {object} createTreatmentResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /treatments [post]
func createTreatmentHandler(svc *Service, generator DoseGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createTreatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := time.Parse("2006-01-02", strings.TrimSpace(req.StartDate))
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var end *time.Time
		if strings.TrimSpace(req.EndDate) != "" {
			e, err := time.Parse("2006-01-02", strings.TrimSpace(req.EndDate))
			if err != nil {
				http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			end = &e
		}

		schedules := make([]ScheduleInput, 0, len(req.Schedules))
		for _, sc := range req.Schedules {
			schedules = append(schedules, ScheduleInput{Time: sc.Time, Enabled: sc.Enabled})
		}

		t, err := svc.Create(r.Context(), CreateInput{
			MedicationName: req.MedicationName,
			Dose:           req.Dose,
			Frequency:      req.Frequency,
			Schedules:      schedules,
			PatientID:      req.PatientID,
			PatientName:    req.PatientName,
			StartDate:      start,
			EndDate:        end,
			Notes:          req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Generación tras el alta; el caller debe esperar la escritura
		// antes de leer dosis (no correr en paralelo contra el almacén).
		n, err := generator.GenerateForTreatment(r.Context(), t, DefaultHorizonDays)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, createTreatmentResponse{
			Treatment:      t,
			GeneratedDoses: n,
		})
	}
}

// listTreatmentsHandler godoc
// @Summary Listar tratamientos
// @Description Lista todos los tratamientos; con `active=true` solo los activos.
// @Tags treatments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param active query bool false "Solo tratamientos activos"
// @Success 200 {array} Treatment
// @Failure 401 {string} string "unauthorized"
// @Router /treatments [get]
func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Treatment
			err   error
		)
		if r.URL.Query().Get("active") == "true" {
			items, err = svc.ListActive(r.Context())
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func getTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "treatmentID"))
		if err != nil {
			http.Error(w, "treatment not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, t)
	}
}

type updateTreatmentRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	MedicationName *string    `json:"medication_name"`
	Dose           *string    `json:"dose"`
	Frequency      *Frequency `json:"frequency"`
	PatientName    *string    `json:"patient_name"`
	Notes          *string    `json:"notes"`
	IsActive       *bool      `json:"is_active"`
	EndDate        *string    `json:"end_date"` // YYYY-MM-DD; null para limpiar
}

// updateTreatmentHandler godoc
// @Summary Actualizar tratamiento (PATCH)
// @Description Parche parcial. Editar el tratamiento NO regenera ni modifica dosis ya materializadas.
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param treatmentID path string true "ID del tratamiento"
// @Param payload body updateTreatmentRequest true "Campos a modificar"
// @Success 200 {object} Treatment
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID} [patch]
func updateTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Para permitir "end_date": null (limpiar) hay que detectar presencia
		// del campo, igual que birth_date en otros módulos.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateTreatmentRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			MedicationName: req.MedicationName,
			Dose:           req.Dose,
			Frequency:      req.Frequency,
			PatientName:    req.PatientName,
			Notes:          req.Notes,
			IsActive:       req.IsActive,
		}

		if v, exists := raw["end_date"]; exists {
			if string(v) == "null" {
				in.ClearEndDate = true
			} else {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "end_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				e, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "end_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.EndDate = &e
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "treatmentID"), in)
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			// MVP: tratamos "not found" como 404 sin acoplar al adapter
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				http.Error(w, "treatment not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// deleteTreatmentHandler godoc
// @Summary Eliminar tratamiento
// @Description Elimina el tratamiento y TODAS sus dosis asociadas (cascada).
// @Tags treatments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 204 {string} string "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID} [delete]
func deleteTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "treatmentID")); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				http.Error(w, "treatment not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
