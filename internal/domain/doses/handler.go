package doses

import (
	"encoding/json"
	"net/http"
	"strings"

	"receta-segura/internal/domain/treatments"
	"receta-segura/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, treatmentsSvc *treatments.Service) {
	r.Route("/doses", func(dr chi.Router) {
		dr.Post("/{doseID}/taken", markDoseHandler(svc, StatusTaken))
		dr.Post("/{doseID}/missed", markDoseHandler(svc, StatusMissed))
		dr.Post("/{doseID}/skipped", markDoseHandler(svc, StatusSkipped))
	})

	r.Get("/treatments/{treatmentID}/doses", listTreatmentDosesHandler(svc, treatmentsSvc))
}

type markDoseRequest struct {
	Notes string `json:"notes"`
}

// markDoseHandler godoc
// @Summary Marcar una dosis
// @Description Marca la dosis como taken/missed/skipped según la ruta. `taken` fija takenAt al momento actual. Acepta notas opcionales.
// @Tags doses
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param doseID path string true "ID de la dosis"
// @Param payload body markDoseRequest false "Notas opcionales"
// @Success 200 {object} Dose
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dose not found"
// @Router /doses/{doseID}/taken [post]
func markDoseHandler(svc *Service, status Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req markDoseRequest
		if r.Body != nil {
			// Body opcional: ignoramos errores de decode con cuerpo vacío.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		doseID := chi.URLParam(r, "doseID")

		var (
			d   Dose
			err error
		)
		switch status {
		case StatusTaken:
			d, err = svc.MarkTaken(r.Context(), doseID, req.Notes)
		case StatusMissed:
			d, err = svc.MarkMissed(r.Context(), doseID, req.Notes)
		case StatusSkipped:
			d, err = svc.MarkSkipped(r.Context(), doseID, req.Notes)
		default:
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				http.Error(w, "dose not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, d)
	}
}

// listTreatmentDosesHandler godoc
// @Summary Listar dosis de un tratamiento
// @Tags doses
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 200 {array} Dose
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID}/doses [get]
func listTreatmentDosesHandler(svc *Service, treatmentsSvc *treatments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		treatmentID := chi.URLParam(r, "treatmentID")
		if _, err := treatmentsSvc.GetByID(r.Context(), treatmentID); err != nil {
			http.Error(w, "treatment not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListByTreatment(r.Context(), treatmentID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
